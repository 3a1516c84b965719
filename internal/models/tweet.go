package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tweet represents a short text update posted by a user.
type Tweet struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateTweetRequest defines the request body for posting a tweet.
type CreateTweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}

// UpdateTweetRequest defines the request body for editing a tweet.
type UpdateTweetRequest struct {
	Content string `json:"content" validate:"required,min=1,max=280"`
}
