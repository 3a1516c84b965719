package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnuragSingh2101/backend/internal/models"
)

// ErrCommentNotFound is returned when no comment matches the given identifier.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	ListVideoComments(ctx context.Context, videoID primitive.ObjectID, page, limit int64) ([]models.CommentWithOwner, int64, error)
	UpdateComment(ctx context.Context, id primitive.ObjectID, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) error
	DeleteCommentsByVideo(ctx context.Context, videoID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// CreateComment creates a new comment in MongoDB
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a comment by ID from MongoDB
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format: %w", err)
	}

	var comment models.Comment
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListVideoComments lists a video's comments joined with their authors,
// paginated, and returns the total comment count for the video.
func (r *MongoCommentRepository) ListVideoComments(ctx context.Context, videoID primitive.ObjectID, page, limit int64) ([]models.CommentWithOwner, int64, error) {
	page, limit = models.ClampPage(page, limit)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"video": videoID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner",
			"pipeline":     bson.A{ownerProjection},
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{"owner": bson.M{"$first": "$owner"}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		bson.D{{Key: "$skip", Value: (page - 1) * limit}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	comments := []models.CommentWithOwner{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, bson.M{"video": videoID})
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// UpdateComment replaces a comment's content and returns the updated document.
func (r *MongoCommentRepository) UpdateComment(ctx context.Context, id primitive.ObjectID, content string) (*models.Comment, error) {
	update := bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrCommentNotFound
	}

	var comment models.Comment
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment deletes a comment by ID from MongoDB
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// DeleteCommentsByVideo removes every comment on a video and returns the ids
// of the removed comments so their likes can be cleaned up too.
func (r *MongoCommentRepository) DeleteCommentsByVideo(ctx context.Context, videoID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"video": videoID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	if len(ids) == 0 {
		return ids, nil
	}

	_, err = r.collection.DeleteMany(ctx, bson.M{"video": videoID})
	return ids, err
}
