package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a video.
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	Video     primitive.ObjectID `json:"video" bson:"video"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CommentWithOwner is a comment joined with its author's public fields.
type CommentWithOwner struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	Video     primitive.ObjectID `json:"video" bson:"video"`
	Owner     *UserSummary       `json:"owner,omitempty" bson:"owner,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateCommentRequest defines the request body for commenting on a video.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// UpdateCommentRequest defines the request body for editing a comment.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}
