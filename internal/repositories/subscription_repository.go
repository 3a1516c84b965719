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

// ErrSubscriptionNotFound is returned when no subscription exists for the pair.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionRepository defines the interface for subscription data operations
type SubscriptionRepository interface {
	GetSubscription(ctx context.Context, subscriber, channel primitive.ObjectID) (*models.Subscription, error)
	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	DeleteSubscription(ctx context.Context, id primitive.ObjectID) error
	GetChannelSubscribers(ctx context.Context, channelID primitive.ObjectID) (*models.ChannelSubscribers, error)
	GetSubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) (*models.SubscribedChannels, error)
	GetLatestVideosFromSubscriptions(ctx context.Context, subscriberID primitive.ObjectID) ([]models.VideoWithOwner, error)
	CountByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error)
}

// MongoSubscriptionRepository implements SubscriptionRepository for MongoDB
type MongoSubscriptionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubscriptionRepository creates a new MongoSubscriptionRepository
func NewMongoSubscriptionRepository(db *mongo.Database) *MongoSubscriptionRepository {
	return &MongoSubscriptionRepository{collection: db.Collection("subscriptions")}
}

// GetSubscription retrieves the subscription a user holds on a channel, if any.
func (r *MongoSubscriptionRepository) GetSubscription(ctx context.Context, subscriber, channel primitive.ObjectID) (*models.Subscription, error) {
	filter := bson.M{"subscriber": subscriber, "channel": channel}

	var sub models.Subscription
	err := r.collection.FindOne(ctx, filter).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// CreateSubscription creates a new subscription in MongoDB. The unique index
// on (subscriber, channel) rejects a concurrent duplicate.
func (r *MongoSubscriptionRepository) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	sub.ID = primitive.NewObjectID()
	sub.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, sub)
	return err
}

// DeleteSubscription deletes a subscription by ID from MongoDB
func (r *MongoSubscriptionRepository) DeleteSubscription(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// GetChannelSubscribers groups a channel's subscriptions and resolves the
// subscriber ids to user summaries.
func (r *MongoSubscriptionRepository) GetChannelSubscribers(ctx context.Context, channelID primitive.ObjectID) (*models.ChannelSubscribers, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"channel": channelID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":              "$channel",
			"subscribersArray": bson.M{"$push": "$subscriber"},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "subscribersArray",
			"foreignField": "_id",
			"as":           "subscribersList",
			"pipeline":     bson.A{ownerProjection},
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{"totalSubscribers": bson.M{"$size": "$subscribersArray"}}}},
		bson.D{{Key: "$project", Value: bson.M{"_id": 0, "subscribersList": 1, "totalSubscribers": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.ChannelSubscribers
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &models.ChannelSubscribers{SubscribersList: []models.UserSummary{}}, nil
	}
	return &results[0], nil
}

// GetSubscribedChannels groups a user's subscriptions and resolves the
// channel ids to user summaries.
func (r *MongoSubscriptionRepository) GetSubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) (*models.SubscribedChannels, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"subscriber": subscriberID}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":             "$subscriber",
			"subscribedArray": bson.M{"$push": "$channel"},
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "subscribedArray",
			"foreignField": "_id",
			"as":           "subscribedChannelList",
			"pipeline":     bson.A{ownerProjection},
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{"totalSubscribedChannels": bson.M{"$size": "$subscribedArray"}}}},
		bson.D{{Key: "$project", Value: bson.M{"_id": 0, "subscribedChannelList": 1, "totalSubscribedChannels": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.SubscribedChannels
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &models.SubscribedChannels{SubscribedChannelList: []models.UserSummary{}}, nil
	}
	return &results[0], nil
}

// GetLatestVideosFromSubscriptions returns, for each channel the user is
// subscribed to, that channel's newest video, ordered newest first.
func (r *MongoSubscriptionRepository) GetLatestVideosFromSubscriptions(ctx context.Context, subscriberID primitive.ObjectID) ([]models.VideoWithOwner, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"subscriber": subscriberID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": "videos",
			"let":  bson.M{"channels": "$channel"},
			"pipeline": bson.A{
				bson.D{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$owner", "$$channels"}}}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
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
					"owner":     1,
					"title":     1,
					"createdAt": 1,
				}}},
			},
			"as": "video",
		}}},
		bson.D{{Key: "$unwind", Value: "$video"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":         "$channel",
			"latestVideo": bson.M{"$first": "$video"},
		}}},
		bson.D{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$latestVideo"}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
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

// CountByChannel counts the subscribers of a channel.
func (r *MongoSubscriptionRepository) CountByChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"channel": channelID})
}
