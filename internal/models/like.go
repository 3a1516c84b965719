package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LikeTarget tags what kind of entity a like points at. A like record carries
// exactly one target; the tag makes that structural instead of three
// optional fields.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Like represents a like by a user on a video, comment or tweet.
type Like struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LikedBy    primitive.ObjectID `json:"likedBy" bson:"likedBy"`
	TargetType LikeTarget         `json:"targetType" bson:"targetType"`
	TargetID   primitive.ObjectID `json:"targetId" bson:"targetId"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
