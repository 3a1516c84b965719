package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account, which doubles as a channel when it publishes videos.
type User struct {
	ID           primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Username     string               `json:"username" bson:"username"`
	Email        string               `json:"email" bson:"email"`
	FullName     string               `json:"fullName" bson:"fullName"`
	Avatar       string               `json:"avatar" bson:"avatar"`
	CoverImage   string               `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	Password     string               `json:"-" bson:"password"` // bcrypt hash, never serialized
	WatchHistory []primitive.ObjectID `json:"watchHistory" bson:"watchHistory"`
	CreatedAt    time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// UserSummary is the owner projection embedded in joined results.
type UserSummary struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username string             `json:"username" bson:"username"`
	FullName string             `json:"fullName" bson:"fullName"`
	Avatar   string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

// LoginRequest defines the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,min=2,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
