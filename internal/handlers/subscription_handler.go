package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AnuragSingh2101/backend/internal/models"
	"github.com/AnuragSingh2101/backend/internal/repositories"
	"github.com/AnuragSingh2101/backend/internal/web"
)

// SubscriptionHandler handles channel subscriptions
type SubscriptionHandler struct {
	subscriptionRepository repositories.SubscriptionRepository
	userRepository         repositories.UserRepository
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subRepo repositories.SubscriptionRepository, userRepo repositories.UserRepository) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionRepository: subRepo,
		userRepository:         userRepo,
	}
}

// RegisterSubscriptionRoutes registers subscription-related routes
func (h *SubscriptionHandler) RegisterSubscriptionRoutes(g *echo.Group) {
	g.POST("/subscriptions/c/:channelId", h.ToggleSubscription)
	g.GET("/subscriptions/c/:channelId", h.GetChannelSubscribers)
	g.GET("/subscriptions/u/:subscriberId", h.GetSubscribedChannels)
	g.GET("/subscriptions/u/:subscriberId/latest", h.GetLatestSubscriptionVideos)
}

// ToggleSubscription subscribes or unsubscribes the acting user to a channel
// and responds with the refreshed list of subscribed channels.
func (h *SubscriptionHandler) ToggleSubscription(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	channelID, err := parseObjectID(c, "channelId", "channel ID")
	if err != nil {
		return err
	}
	if channelID == userID {
		return web.NewError(http.StatusBadRequest, "You cannot subscribe to your own channel")
	}

	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByID(ctx, channelID.Hex()); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return web.NewError(http.StatusNotFound, "Channel not found")
		}
		return err
	}

	existing, err := h.subscriptionRepository.GetSubscription(ctx, userID, channelID)
	if err != nil && !errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return err
	}

	message := "Subscription added"
	if existing != nil {
		if err := h.subscriptionRepository.DeleteSubscription(ctx, existing.ID); err != nil {
			return err
		}
		message = "Subscription removed"
	} else {
		sub := &models.Subscription{Subscriber: userID, Channel: channelID}
		if err := h.subscriptionRepository.CreateSubscription(ctx, sub); err != nil {
			return err
		}
	}

	channels, err := h.subscriptionRepository.GetSubscribedChannels(ctx, userID)
	if err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, channels, message)
}

// GetChannelSubscribers lists the subscribers of a channel.
func (h *SubscriptionHandler) GetChannelSubscribers(c echo.Context) error {
	channelID, err := parseObjectID(c, "channelId", "channel ID")
	if err != nil {
		return err
	}

	subscribers, err := h.subscriptionRepository.GetChannelSubscribers(c.Request().Context(), channelID)
	if err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, subscribers, "Channel subscribers fetched successfully")
}

// GetSubscribedChannels lists the channels a user is subscribed to.
func (h *SubscriptionHandler) GetSubscribedChannels(c echo.Context) error {
	subscriberID, err := parseObjectID(c, "subscriberId", "subscriber ID")
	if err != nil {
		return err
	}

	channels, err := h.subscriptionRepository.GetSubscribedChannels(c.Request().Context(), subscriberID)
	if err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, channels, "Subscribed channels fetched successfully")
}

// GetLatestSubscriptionVideos returns the newest video from each channel a
// subscriber follows.
func (h *SubscriptionHandler) GetLatestSubscriptionVideos(c echo.Context) error {
	subscriberID, err := parseObjectID(c, "subscriberId", "subscriber ID")
	if err != nil {
		return err
	}

	videos, err := h.subscriptionRepository.GetLatestVideosFromSubscriptions(c.Request().Context(), subscriberID)
	if err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, videos, "Latest subscription videos fetched successfully")
}
