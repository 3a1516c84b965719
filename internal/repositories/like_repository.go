package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnuragSingh2101/backend/internal/models"
)

// ErrLikeNotFound is returned when no like exists for the given pair.
var ErrLikeNotFound = errors.New("like not found")

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	GetLike(ctx context.Context, likedBy primitive.ObjectID, target models.LikeTarget, targetID primitive.ObjectID) (*models.Like, error)
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, id primitive.ObjectID) error
	CountByTarget(ctx context.Context, target models.LikeTarget, targetID primitive.ObjectID) (int64, error)
	GetLikedVideos(ctx context.Context, likedBy primitive.ObjectID) ([]models.VideoWithOwner, error)
	DeleteByTargets(ctx context.Context, target models.LikeTarget, targetIDs []primitive.ObjectID) error
	CountLikesForChannelVideos(ctx context.Context, channelID primitive.ObjectID) (int64, error)
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// GetLike retrieves the like a user placed on a target, if any.
func (r *MongoLikeRepository) GetLike(ctx context.Context, likedBy primitive.ObjectID, target models.LikeTarget, targetID primitive.ObjectID) (*models.Like, error) {
	filter := bson.M{"likedBy": likedBy, "targetType": target, "targetId": targetID}

	var like models.Like
	err := r.collection.FindOne(ctx, filter).Decode(&like)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrLikeNotFound
		}
		return nil, err
	}
	return &like, nil
}

// CreateLike creates a new like in MongoDB. The unique index on
// (likedBy, targetType, targetId) rejects a concurrent duplicate.
func (r *MongoLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, like)
	return err
}

// DeleteLike deletes a like by ID from MongoDB
func (r *MongoLikeRepository) DeleteLike(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// CountByTarget counts the likes on a single target.
func (r *MongoLikeRepository) CountByTarget(ctx context.Context, target models.LikeTarget, targetID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"targetType": target, "targetId": targetID})
}

// GetLikedVideos resolves a user's video likes to the liked video documents,
// each joined with its owner, in like-creation order.
func (r *MongoLikeRepository) GetLikedVideos(ctx context.Context, likedBy primitive.ObjectID) ([]models.VideoWithOwner, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"likedBy":    likedBy,
			"targetType": models.LikeTargetVideo,
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "videos",
			"localField":   "targetId",
			"foreignField": "_id",
			"as":           "video",
			"pipeline": bson.A{
				bson.D{{Key: "$lookup", Value: bson.M{
					"from":         "users",
					"localField":   "owner",
					"foreignField": "_id",
					"as":           "owner",
					"pipeline":     bson.A{ownerProjection},
				}}},
				bson.D{{Key: "$addFields", Value: bson.M{"owner": bson.M{"$first": "$owner"}}}},
				bson.D{{Key: "$project", Value: bson.M{
					"thumbnail": 1,
					"duration":  1,
					"views":     1,
					"title":     1,
					"createdAt": 1,
					"owner":     1,
				}}},
			},
		}}},
		bson.D{{Key: "$unwind", Value: "$video"}},
		bson.D{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$video"}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	videos := []models.VideoWithOwner{}
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// DeleteByTargets removes every like pointing at any of the given targets.
func (r *MongoLikeRepository) DeleteByTargets(ctx context.Context, target models.LikeTarget, targetIDs []primitive.ObjectID) error {
	if len(targetIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{
		"targetType": target,
		"targetId":   bson.M{"$in": targetIDs},
	})
	return err
}

// CountLikesForChannelVideos counts likes across all videos owned by a channel.
func (r *MongoLikeRepository) CountLikesForChannelVideos(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"targetType": models.LikeTargetVideo}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "videos",
			"localField":   "targetId",
			"foreignField": "_id",
			"as":           "videoDetails",
		}}},
		bson.D{{Key: "$unwind", Value: "$videoDetails"}},
		bson.D{{Key: "$match", Value: bson.M{"videoDetails.owner": channelID}}},
		bson.D{{Key: "$count", Value: "totalLikes"}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalLikes int64 `bson:"totalLikes"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].TotalLikes, nil
}
