package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB holds the database connection for the lifetime of the process.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// InitDB connects to MongoDB and verifies the connection with a ping.
func InitDB(uri, dbName string) (*DB, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")
	return &DB{Client: client, Database: client.Database(dbName)}, nil
}

// EnsureIndexes creates the unique indexes the application relies on.
// The compound indexes on likes and subscriptions are the only guard against
// two concurrent toggles both inserting the same (actor, target) pair.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Database.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	})
	if err != nil {
		return err
	}

	_, err = db.Database.Collection("likes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "likedBy", Value: 1}, {Key: "targetType", Value: 1}, {Key: "targetId", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Database.Collection("subscriptions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
		Options: unique,
	})
	return err
}

// CloseDB closes the database connection.
func (db *DB) CloseDB() {
	if db.Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Client.Disconnect(ctx); err != nil {
		log.Printf("Error closing MongoDB connection: %v\n", err)
	} else {
		log.Println("MongoDB connection closed.")
	}
}
