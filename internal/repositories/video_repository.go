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

// ErrVideoNotFound is returned when no video matches the given identifier.
var ErrVideoNotFound = errors.New("video not found")

// ownerProjection is the set of owner fields exposed by joined listings.
var ownerProjection = bson.D{
	{Key: "$project", Value: bson.M{"username": 1, "fullName": 1, "avatar": 1}},
}

// VideoRepository defines the interface for video data operations
type VideoRepository interface {
	CreateVideo(ctx context.Context, video *models.Video) error
	GetVideoByID(ctx context.Context, id string) (*models.Video, error)
	GetVideoWithOwner(ctx context.Context, id string) (*models.VideoWithOwner, error)
	GetVideosByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Video, error)
	ListVideos(ctx context.Context, params models.ListVideosParams) (*models.VideoPage, error)
	ListChannelVideos(ctx context.Context, channelID primitive.ObjectID, page, limit int64) ([]models.Video, int64, error)
	UpdateVideo(ctx context.Context, video *models.Video) error
	DeleteVideo(ctx context.Context, id primitive.ObjectID) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
	SumViewsByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
}

// MongoVideoRepository implements VideoRepository for MongoDB
type MongoVideoRepository struct {
	collection *mongo.Collection
}

// NewMongoVideoRepository creates a new MongoVideoRepository
func NewMongoVideoRepository(db *mongo.Database) *MongoVideoRepository {
	return &MongoVideoRepository{collection: db.Collection("videos")}
}

// CreateVideo creates a new video in MongoDB
func (r *MongoVideoRepository) CreateVideo(ctx context.Context, video *models.Video) error {
	video.ID = primitive.NewObjectID()
	video.CreatedAt = time.Now()
	video.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, video)
	return err
}

// GetVideoByID retrieves a video by ID from MongoDB
func (r *MongoVideoRepository) GetVideoByID(ctx context.Context, id string) (*models.Video, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid video ID format: %w", err)
	}

	var video models.Video
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&video)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

// GetVideoWithOwner retrieves a video joined with its owner's public fields.
func (r *MongoVideoRepository) GetVideoWithOwner(ctx context.Context, id string) (*models.VideoWithOwner, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid video ID format: %w", err)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": objID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner",
			"pipeline":     bson.A{ownerProjection},
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{"owner": bson.M{"$first": "$owner"}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.VideoWithOwner
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrVideoNotFound
	}
	return &results[0], nil
}

// GetVideosByIDs retrieves the videos whose ids appear in the given list.
func (r *MongoVideoRepository) GetVideosByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Video, error) {
	videos := []models.Video{}
	if len(ids) == 0 {
		return videos, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// ListVideos lists published videos with search, sort and pagination, each
// joined with its owner.
func (r *MongoVideoRepository) ListVideos(ctx context.Context, params models.ListVideosParams) (*models.VideoPage, error) {
	filter := bson.M{"isPublished": true}
	if params.Query != "" {
		regex := primitive.Regex{Pattern: params.Query, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
		}
	}
	if params.UserID != "" {
		ownerID, err := primitive.ObjectIDFromHex(params.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID format: %w", err)
		}
		filter["owner"] = ownerID
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortType := params.SortType
	if sortType == 0 {
		sortType = -1
	}

	page, limit := models.ClampPage(params.Page, params.Limit)
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "ownerDetails",
			"pipeline":     bson.A{ownerProjection},
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{"owner": bson.M{"$arrayElemAt": bson.A{"$ownerDetails", 0}}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: sortBy, Value: sortType}}}},
		bson.D{{Key: "$skip", Value: (page - 1) * limit}},
		bson.D{{Key: "$limit", Value: limit}},
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

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &models.VideoPage{
		Videos:      videos,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalVideos: total,
	}, nil
}

// ListChannelVideos lists a channel's videos newest first with pagination.
func (r *MongoVideoRepository) ListChannelVideos(ctx context.Context, channelID primitive.ObjectID, page, limit int64) ([]models.Video, int64, error) {
	page, limit = models.ClampPage(page, limit)
	filter := bson.M{"owner": channelID}

	findOptions := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	videos := []models.Video{}
	if err = cursor.All(ctx, &videos); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// UpdateVideo updates the mutable fields of an existing video.
func (r *MongoVideoRepository) UpdateVideo(ctx context.Context, video *models.Video) error {
	video.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":       video.Title,
			"description": video.Description,
			"thumbnail":   video.Thumbnail,
			"isPublished": video.IsPublished,
			"updatedAt":   video.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": video.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVideoNotFound
	}
	return nil
}

// DeleteVideo deletes a video by ID from MongoDB
func (r *MongoVideoRepository) DeleteVideo(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrVideoNotFound
	}
	return nil
}

// IncrementViews bumps the view count of a video by one.
func (r *MongoVideoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// CountByOwner counts the videos owned by a channel.
func (r *MongoVideoRepository) CountByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"owner": ownerID})
}

// SumViewsByOwner folds the view counts of a channel's videos into one total.
func (r *MongoVideoRepository) SumViewsByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"owner": ownerID}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": nil, "totalViews": bson.M{"$sum": "$views"}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalViews int64 `bson:"totalViews"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].TotalViews, nil
}
