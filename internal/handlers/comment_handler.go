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

// CommentHandler handles HTTP requests related to video comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	videoRepository   repositories.VideoRepository
	likeRepository    repositories.LikeRepository
	log               zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, videoRepo repositories.VideoRepository, likeRepo repositories.LikeRepository, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		videoRepository:   videoRepo,
		likeRepository:    likeRepo,
		log:               log,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/comments/:videoId", h.ListVideoComments)
	g.POST("/comments/:videoId", h.AddComment)
	g.PATCH("/comments/c/:commentId", h.UpdateComment)
	g.DELETE("/comments/c/:commentId", h.DeleteComment)
}

type commentPage struct {
	models.PageMeta
	VideoComments []models.CommentWithOwner `json:"videoComments"`
}

// ListVideoComments returns a page of a video's comments, newest first within
// the page.
func (h *CommentHandler) ListVideoComments(c echo.Context) error {
	videoID, err := parseObjectID(c, "videoId", "video ID")
	if err != nil {
		return err
	}
	page, limit := parsePagination(c)

	ctx := c.Request().Context()
	if _, err := h.videoRepository.GetVideoByID(ctx, videoID.Hex()); err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return web.NewError(http.StatusNotFound, "Video not found")
		}
		return err
	}

	comments, total, err := h.commentRepository.ListVideoComments(ctx, videoID, page, limit)
	if err != nil {
		return err
	}

	for i, j := 0, len(comments)-1; i < j; i, j = i+1, j-1 {
		comments[i], comments[j] = comments[j], comments[i]
	}

	result := commentPage{
		PageMeta:      models.NewPageMeta(total, page, limit, len(comments)),
		VideoComments: comments,
	}
	return web.Respond(c, http.StatusOK, result, "Comments fetched successfully")
}

// AddComment creates a comment on a video.
func (h *CommentHandler) AddComment(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	videoID, err := parseObjectID(c, "videoId", "video ID")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Comment content is required")
	}

	ctx := c.Request().Context()
	if _, err := h.videoRepository.GetVideoByID(ctx, videoID.Hex()); err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return web.NewError(http.StatusNotFound, "Video not found")
		}
		return err
	}

	comment := &models.Comment{
		Content: req.Content,
		Video:   videoID,
		Owner:   userID,
	}
	if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
		return err
	}
	return web.Respond(c, http.StatusCreated, comment, "Comment added successfully")
}

// UpdateComment edits a comment's content. Only the author may edit.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	commentID, err := parseObjectID(c, "commentId", "comment ID")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Comment content is required")
	}

	ctx := c.Request().Context()
	comment, err := h.commentRepository.GetCommentByID(ctx, commentID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return web.NewError(http.StatusNotFound, "Comment not found")
		}
		return err
	}
	if comment.Owner != userID {
		return web.NewError(http.StatusUnauthorized, "You do not have permission to perform this action on this resource")
	}

	updated, err := h.commentRepository.UpdateComment(ctx, commentID, req.Content)
	if err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, updated, "Comment updated successfully")
}

// DeleteComment removes a comment and its likes. Only the author may delete.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	commentID, err := parseObjectID(c, "commentId", "comment ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	comment, err := h.commentRepository.GetCommentByID(ctx, commentID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return web.NewError(http.StatusNotFound, "Comment not found")
		}
		return err
	}
	if comment.Owner != userID {
		return web.NewError(http.StatusUnauthorized, "You do not have permission to perform this action on this resource")
	}

	if err := h.commentRepository.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	if err := h.likeRepository.DeleteByTargets(ctx, models.LikeTargetComment, []primitive.ObjectID{commentID}); err != nil {
		h.log.Warn().Err(err).Str("comment_id", commentID.Hex()).Msg("failed to delete comment likes")
	}
	return web.Respond(c, http.StatusOK, nil, "Comment deleted successfully")
}
