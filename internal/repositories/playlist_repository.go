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

// ErrPlaylistNotFound is returned when no playlist matches the given identifier.
var ErrPlaylistNotFound = errors.New("playlist not found")

// PlaylistRepository defines the interface for playlist data operations
type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *models.Playlist) error
	GetPlaylistByID(ctx context.Context, id string) (*models.Playlist, error)
	GetPlaylistWithVideos(ctx context.Context, id primitive.ObjectID) (*models.PlaylistWithVideos, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error)
	AddVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error
	RemoveVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error
	UpdatePlaylist(ctx context.Context, id primitive.ObjectID, name, description string) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id primitive.ObjectID) error
	PullVideoFromAll(ctx context.Context, videoID primitive.ObjectID) error
}

// MongoPlaylistRepository implements PlaylistRepository for MongoDB
type MongoPlaylistRepository struct {
	collection *mongo.Collection
}

// NewMongoPlaylistRepository creates a new MongoPlaylistRepository
func NewMongoPlaylistRepository(db *mongo.Database) *MongoPlaylistRepository {
	return &MongoPlaylistRepository{collection: db.Collection("playlists")}
}

// CreatePlaylist creates a new playlist in MongoDB
func (r *MongoPlaylistRepository) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	playlist.ID = primitive.NewObjectID()
	playlist.CreatedAt = time.Now()
	playlist.UpdatedAt = time.Now()
	if playlist.Videos == nil {
		playlist.Videos = []primitive.ObjectID{}
	}
	_, err := r.collection.InsertOne(ctx, playlist)
	return err
}

// GetPlaylistByID retrieves a playlist by ID from MongoDB
func (r *MongoPlaylistRepository) GetPlaylistByID(ctx context.Context, id string) (*models.Playlist, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid playlist ID format: %w", err)
	}

	var playlist models.Playlist
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&playlist)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return &playlist, nil
}

// GetPlaylistWithVideos retrieves a playlist with its video ids resolved to
// full video documents.
func (r *MongoPlaylistRepository) GetPlaylistWithVideos(ctx context.Context, id primitive.ObjectID) (*models.PlaylistWithVideos, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "videos",
			"localField":   "videos",
			"foreignField": "_id",
			"as":           "videos",
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.PlaylistWithVideos
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrPlaylistNotFound
	}
	return &results[0], nil
}

// ListByOwner lists a user's playlists newest first.
func (r *MongoPlaylistRepository) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Playlist, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	playlists := []models.Playlist{}
	if err = cursor.All(ctx, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// AddVideo adds a video id to the playlist. $addToSet keeps membership unique
// even when two requests race past the handler's duplicate check.
func (r *MongoPlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": playlistID},
		bson.M{
			"$addToSet": bson.M{"videos": videoID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// RemoveVideo pulls a video id out of the playlist.
func (r *MongoPlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": playlistID},
		bson.M{
			"$pull": bson.M{"videos": videoID},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// UpdatePlaylist updates the playlist metadata and returns the updated document.
func (r *MongoPlaylistRepository) UpdatePlaylist(ctx context.Context, id primitive.ObjectID, name, description string) (*models.Playlist, error) {
	set := bson.M{"updatedAt": time.Now()}
	if name != "" {
		set["name"] = name
	}
	if description != "" {
		set["description"] = description
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrPlaylistNotFound
	}

	var playlist models.Playlist
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// DeletePlaylist deletes a playlist by ID from MongoDB
func (r *MongoPlaylistRepository) DeletePlaylist(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// PullVideoFromAll removes a video id from every playlist referencing it.
func (r *MongoPlaylistRepository) PullVideoFromAll(ctx context.Context, videoID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"videos": videoID},
		bson.M{"$pull": bson.M{"videos": videoID}},
	)
	return err
}
