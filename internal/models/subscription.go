package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription represents a user subscribing to a channel (another user).
type Subscription struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Subscriber primitive.ObjectID `json:"subscriber" bson:"subscriber"`
	Channel    primitive.ObjectID `json:"channel" bson:"channel"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// ChannelSubscribers is the aggregate result of a channel's subscriber listing.
type ChannelSubscribers struct {
	SubscribersList  []UserSummary `json:"subscribersList" bson:"subscribersList"`
	TotalSubscribers int           `json:"totalSubscribers" bson:"totalSubscribers"`
}

// SubscribedChannels is the aggregate result of a user's subscription listing.
type SubscribedChannels struct {
	SubscribedChannelList   []UserSummary `json:"subscribedChannelList" bson:"subscribedChannelList"`
	TotalSubscribedChannels int           `json:"totalSubscribedChannels" bson:"totalSubscribedChannels"`
}
