package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnuragSingh2101/backend/internal/models"
	"github.com/AnuragSingh2101/backend/internal/repositories"
	"github.com/AnuragSingh2101/backend/internal/web"
)

// LikeHandler handles like toggles on videos, comments and tweets
type LikeHandler struct {
	likeRepository    repositories.LikeRepository
	videoRepository   repositories.VideoRepository
	commentRepository repositories.CommentRepository
	tweetRepository   repositories.TweetRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, videoRepo repositories.VideoRepository, commentRepo repositories.CommentRepository, tweetRepo repositories.TweetRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:    likeRepo,
		videoRepository:   videoRepo,
		commentRepository: commentRepo,
		tweetRepository:   tweetRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes/toggle/v/:videoId", h.ToggleVideoLike)
	g.POST("/likes/toggle/c/:commentId", h.ToggleCommentLike)
	g.POST("/likes/toggle/t/:tweetId", h.ToggleTweetLike)
	g.GET("/likes/videos", h.GetLikedVideos)
	g.GET("/likes/count/:videoId", h.CountVideoLikes)
}

// ToggleVideoLike adds or removes the acting user's like on a video.
func (h *LikeHandler) ToggleVideoLike(c echo.Context) error {
	videoID, err := parseObjectID(c, "videoId", "video ID")
	if err != nil {
		return err
	}

	if _, err := h.videoRepository.GetVideoByID(c.Request().Context(), videoID.Hex()); err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return web.NewError(http.StatusNotFound, "Video not found")
		}
		return err
	}
	return h.toggle(c, models.LikeTargetVideo, videoID, "video")
}

// ToggleCommentLike adds or removes the acting user's like on a comment.
func (h *LikeHandler) ToggleCommentLike(c echo.Context) error {
	commentID, err := parseObjectID(c, "commentId", "comment ID")
	if err != nil {
		return err
	}

	if _, err := h.commentRepository.GetCommentByID(c.Request().Context(), commentID.Hex()); err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return web.NewError(http.StatusNotFound, "Comment not found")
		}
		return err
	}
	return h.toggle(c, models.LikeTargetComment, commentID, "comment")
}

// ToggleTweetLike adds or removes the acting user's like on a tweet.
func (h *LikeHandler) ToggleTweetLike(c echo.Context) error {
	tweetID, err := parseObjectID(c, "tweetId", "tweet ID")
	if err != nil {
		return err
	}

	if _, err := h.tweetRepository.GetTweetByID(c.Request().Context(), tweetID.Hex()); err != nil {
		if errors.Is(err, repositories.ErrTweetNotFound) {
			return web.NewError(http.StatusNotFound, "Tweet not found")
		}
		return err
	}
	return h.toggle(c, models.LikeTargetTweet, tweetID, "tweet")
}

func (h *LikeHandler) toggle(c echo.Context, target models.LikeTarget, targetID primitive.ObjectID, label string) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	existing, err := h.likeRepository.GetLike(ctx, userID, target, targetID)
	if err != nil && !errors.Is(err, repositories.ErrLikeNotFound) {
		return err
	}

	if existing != nil {
		if err := h.likeRepository.DeleteLike(ctx, existing.ID); err != nil {
			return err
		}
		return web.Respond(c, http.StatusOK, nil, label+" like removed")
	}

	like := &models.Like{
		LikedBy:    userID,
		TargetType: target,
		TargetID:   targetID,
	}
	if err := h.likeRepository.CreateLike(ctx, like); err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, like, label+" like added")
}

// GetLikedVideos returns the videos the acting user has liked, most recent
// like first.
func (h *LikeHandler) GetLikedVideos(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	videos, err := h.likeRepository.GetLikedVideos(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return web.NewError(http.StatusNotFound, "No likes found")
	}

	for i, j := 0, len(videos)-1; i < j; i, j = i+1, j-1 {
		videos[i], videos[j] = videos[j], videos[i]
	}
	return web.Respond(c, http.StatusOK, videos, "Liked videos fetched successfully")
}

// CountVideoLikes returns the number of likes on a video.
func (h *LikeHandler) CountVideoLikes(c echo.Context) error {
	videoID, err := parseObjectID(c, "videoId", "video ID")
	if err != nil {
		return err
	}

	count, err := h.likeRepository.CountByTarget(c.Request().Context(), models.LikeTargetVideo, videoID)
	if err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, echo.Map{"videoLikes": count}, "Video likes counted successfully")
}
