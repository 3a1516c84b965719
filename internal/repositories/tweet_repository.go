package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnuragSingh2101/backend/internal/models"
)

// ErrTweetNotFound is returned when no tweet matches the given identifier.
var ErrTweetNotFound = errors.New("tweet not found")

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	CreateTweet(ctx context.Context, tweet *models.Tweet) error
	GetTweetByID(ctx context.Context, id string) (*models.Tweet, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Tweet, error)
	UpdateTweet(ctx context.Context, id primitive.ObjectID, content string) (*models.Tweet, error)
	DeleteTweet(ctx context.Context, id primitive.ObjectID) error
}

// MongoTweetRepository implements TweetRepository for MongoDB
type MongoTweetRepository struct {
	collection *mongo.Collection
}

// NewMongoTweetRepository creates a new MongoTweetRepository
func NewMongoTweetRepository(db *mongo.Database) *MongoTweetRepository {
	return &MongoTweetRepository{collection: db.Collection("tweets")}
}

// CreateTweet creates a new tweet in MongoDB
func (r *MongoTweetRepository) CreateTweet(ctx context.Context, tweet *models.Tweet) error {
	tweet.ID = primitive.NewObjectID()
	tweet.CreatedAt = time.Now()
	tweet.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, tweet)
	return err
}

// GetTweetByID retrieves a tweet by ID from MongoDB
func (r *MongoTweetRepository) GetTweetByID(ctx context.Context, id string) (*models.Tweet, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid tweet ID format: %w", err)
	}

	var tweet models.Tweet
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&tweet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	return &tweet, nil
}

// ListByOwner lists a user's tweets newest first.
func (r *MongoTweetRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Tweet, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tweets := []models.Tweet{}
	if err = cursor.All(ctx, &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

// UpdateTweet replaces a tweet's content and returns the updated document.
func (r *MongoTweetRepository) UpdateTweet(ctx context.Context, id primitive.ObjectID, content string) (*models.Tweet, error) {
	update := bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrTweetNotFound
	}

	var tweet models.Tweet
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

// DeleteTweet deletes a tweet by ID from MongoDB
func (r *MongoTweetRepository) DeleteTweet(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrTweetNotFound
	}
	return nil
}
