package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Playlist represents an ordered list of videos owned by a user.
type Playlist struct {
	ID          primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	Videos      []primitive.ObjectID `json:"videos" bson:"videos"`
	Owner       primitive.ObjectID   `json:"owner" bson:"owner"`
	CreatedAt   time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// PlaylistWithVideos is a playlist with its video ids resolved to documents.
type PlaylistWithVideos struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Videos      []Video            `json:"videos" bson:"videos"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreatePlaylistRequest defines the request body for creating a playlist.
type CreatePlaylistRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"required,min=1,max=500"`
}

// UpdatePlaylistRequest defines the request body for updating playlist metadata.
type UpdatePlaylistRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
}
