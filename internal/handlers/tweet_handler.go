package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnuragSingh2101/backend/internal/models"
	"github.com/AnuragSingh2101/backend/internal/repositories"
	"github.com/AnuragSingh2101/backend/internal/web"
)

// TweetHandler handles HTTP requests related to tweets
type TweetHandler struct {
	tweetRepository repositories.TweetRepository
	likeRepository  repositories.LikeRepository
	log             zerolog.Logger
}

// NewTweetHandler creates a new TweetHandler
func NewTweetHandler(tweetRepo repositories.TweetRepository, likeRepo repositories.LikeRepository, log zerolog.Logger) *TweetHandler {
	return &TweetHandler{
		tweetRepository: tweetRepo,
		likeRepository:  likeRepo,
		log:             log,
	}
}

// RegisterTweetRoutes registers tweet-related routes
func (h *TweetHandler) RegisterTweetRoutes(g *echo.Group) {
	g.POST("/tweets", h.CreateTweet)
	g.GET("/tweets/user/:userId", h.GetUserTweets)
	g.PATCH("/tweets/:tweetId", h.UpdateTweet)
	g.DELETE("/tweets/:tweetId", h.DeleteTweet)
}

// CreateTweet posts a tweet for the acting user.
func (h *TweetHandler) CreateTweet(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateTweetRequest
	if err := c.Bind(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Tweet content is required")
	}

	tweet := &models.Tweet{
		Content: req.Content,
		Owner:   userID,
	}
	if err := h.tweetRepository.CreateTweet(c.Request().Context(), tweet); err != nil {
		return err
	}
	return web.Respond(c, http.StatusCreated, tweet, "Tweet created successfully")
}

// GetUserTweets lists a user's tweets newest first.
func (h *TweetHandler) GetUserTweets(c echo.Context) error {
	userID, err := parseObjectID(c, "userId", "user ID")
	if err != nil {
		return err
	}

	tweets, err := h.tweetRepository.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, tweets, "User tweets fetched successfully")
}

// UpdateTweet edits a tweet's content. Only the author may edit.
func (h *TweetHandler) UpdateTweet(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	tweetID, err := parseObjectID(c, "tweetId", "tweet ID")
	if err != nil {
		return err
	}

	var req models.UpdateTweetRequest
	if err := c.Bind(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Tweet content is required")
	}

	ctx := c.Request().Context()
	tweet, err := h.tweetRepository.GetTweetByID(ctx, tweetID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrTweetNotFound) {
			return web.NewError(http.StatusNotFound, "Tweet not found")
		}
		return err
	}
	if tweet.Owner != userID {
		return web.NewError(http.StatusUnauthorized, "You do not have permission to perform this action on this resource")
	}

	updated, err := h.tweetRepository.UpdateTweet(ctx, tweetID, req.Content)
	if err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, updated, "Tweet updated successfully")
}

// DeleteTweet removes a tweet and its likes. Only the author may delete.
func (h *TweetHandler) DeleteTweet(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	tweetID, err := parseObjectID(c, "tweetId", "tweet ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	tweet, err := h.tweetRepository.GetTweetByID(ctx, tweetID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrTweetNotFound) {
			return web.NewError(http.StatusNotFound, "Tweet not found")
		}
		return err
	}
	if tweet.Owner != userID {
		return web.NewError(http.StatusUnauthorized, "You do not have permission to perform this action on this resource")
	}

	if err := h.tweetRepository.DeleteTweet(ctx, tweetID); err != nil {
		return err
	}
	if err := h.likeRepository.DeleteByTargets(ctx, models.LikeTargetTweet, []primitive.ObjectID{tweetID}); err != nil {
		h.log.Warn().Err(err).Str("tweet_id", tweetID.Hex()).Msg("failed to delete tweet likes")
	}
	return web.Respond(c, http.StatusOK, nil, "Tweet deleted successfully")
}
