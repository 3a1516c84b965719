package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video represents an uploaded video document.
type Video struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	VideoFile   string             `json:"videoFile" bson:"videoFile"`
	Thumbnail   string             `json:"thumbnail" bson:"thumbnail"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	IsPublished bool               `json:"isPublished" bson:"isPublished"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// VideoWithOwner is a video joined with its owner's public fields.
type VideoWithOwner struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	VideoFile   string             `json:"videoFile,omitempty" bson:"videoFile,omitempty"`
	Thumbnail   string             `json:"thumbnail" bson:"thumbnail"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	IsPublished bool               `json:"isPublished,omitempty" bson:"isPublished,omitempty"`
	Owner       *UserSummary       `json:"owner,omitempty" bson:"owner,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// ListVideosParams are the query parameters of the paginated video listing.
type ListVideosParams struct {
	Page     int64
	Limit    int64
	Query    string
	SortBy   string
	SortType int // 1 ascending, -1 descending
	UserID   string
}

// VideoPage is the caller-facing page of a video listing.
type VideoPage struct {
	Videos      []VideoWithOwner `json:"videos"`
	CurrentPage int64            `json:"currentPage"`
	TotalPages  int64            `json:"totalPages"`
	TotalVideos int64            `json:"totalVideos"`
}
