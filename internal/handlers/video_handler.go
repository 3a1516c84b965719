package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnuragSingh2101/backend/internal/media"
	"github.com/AnuragSingh2101/backend/internal/models"
	"github.com/AnuragSingh2101/backend/internal/repositories"
	"github.com/AnuragSingh2101/backend/internal/web"
)

// VideoHandler handles HTTP requests related to videos
type VideoHandler struct {
	videoRepository    repositories.VideoRepository
	commentRepository  repositories.CommentRepository
	likeRepository     repositories.LikeRepository
	playlistRepository repositories.PlaylistRepository
	userRepository     repositories.UserRepository
	media              media.Service
	log                zerolog.Logger
}

// NewVideoHandler creates a new VideoHandler
func NewVideoHandler(
	videoRepo repositories.VideoRepository,
	commentRepo repositories.CommentRepository,
	likeRepo repositories.LikeRepository,
	playlistRepo repositories.PlaylistRepository,
	userRepo repositories.UserRepository,
	mediaSvc media.Service,
	log zerolog.Logger,
) *VideoHandler {
	return &VideoHandler{
		videoRepository:    videoRepo,
		commentRepository:  commentRepo,
		likeRepository:     likeRepo,
		playlistRepository: playlistRepo,
		userRepository:     userRepo,
		media:              mediaSvc,
		log:                log,
	}
}

// RegisterVideoRoutes registers video-related routes
func (h *VideoHandler) RegisterVideoRoutes(g *echo.Group) {
	g.GET("/videos", h.ListVideos)
	g.POST("/videos", h.PublishVideo)
	g.GET("/videos/:videoId", h.GetVideo)
	g.PATCH("/videos/:videoId", h.UpdateVideo)
	g.DELETE("/videos/:videoId", h.DeleteVideo)
	g.PATCH("/videos/toggle/publish/:videoId", h.TogglePublishStatus)
}

// ListVideos lists published videos with search, sort and pagination.
func (h *VideoHandler) ListVideos(c echo.Context) error {
	page, limit := parsePagination(c)
	sortType, _ := strconv.Atoi(c.QueryParam("sortType"))

	params := models.ListVideosParams{
		Page:     page,
		Limit:    limit,
		Query:    c.QueryParam("query"),
		SortBy:   c.QueryParam("sortBy"),
		SortType: sortType,
		UserID:   c.QueryParam("userId"),
	}
	if params.UserID != "" {
		if _, err := primitive.ObjectIDFromHex(params.UserID); err != nil {
			return web.NewError(http.StatusBadRequest, "Invalid user ID")
		}
	}

	result, err := h.videoRepository.ListVideos(c.Request().Context(), params)
	if err != nil {
		return err
	}
	if len(result.Videos) == 0 {
		return web.NewError(http.StatusNotFound, "No videos found")
	}
	return web.Respond(c, http.StatusOK, result, "Videos fetched successfully")
}

// PublishVideo uploads a video and its thumbnail and creates the document.
func (h *VideoHandler) PublishVideo(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return web.NewError(http.StatusBadRequest, "Title cannot be empty")
	}
	description := c.FormValue("description")
	isPublished := c.FormValue("visibility") == "public"

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		return web.NewError(http.StatusBadRequest, "Please select a video and a thumbnail image to upload")
	}
	thumbnailFile, err := c.FormFile("thumbnail")
	if err != nil {
		return web.NewError(http.StatusBadRequest, "Please select a video and a thumbnail image to upload")
	}

	ctx := c.Request().Context()
	videoPath, err := saveTempFile(videoFile)
	if err != nil {
		return web.NewError(http.StatusInternalServerError, "Something went wrong while uploading video")
	}
	videoAsset, err := h.media.Upload(ctx, videoPath)
	if err != nil {
		return web.NewError(http.StatusInternalServerError, "Something went wrong while uploading video")
	}

	thumbnailPath, err := saveTempFile(thumbnailFile)
	if err != nil {
		return web.NewError(http.StatusInternalServerError, "Something went wrong while uploading thumbnail")
	}
	thumbnailAsset, err := h.media.Upload(ctx, thumbnailPath)
	if err != nil {
		return web.NewError(http.StatusInternalServerError, "Something went wrong while uploading thumbnail")
	}

	video := &models.Video{
		Title:       title,
		Description: description,
		VideoFile:   videoAsset.URL,
		Thumbnail:   thumbnailAsset.URL,
		Duration:    videoAsset.Duration,
		Owner:       userID,
		IsPublished: isPublished,
	}
	if err := h.videoRepository.CreateVideo(ctx, video); err != nil {
		return err
	}

	return web.Respond(c, http.StatusCreated, video, "Video published successfully")
}

// GetVideo increments the view count, fetches the video with its owner and
// records it in the watcher's history.
func (h *VideoHandler) GetVideo(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	videoID, err := parseObjectID(c, "videoId", "video ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.videoRepository.IncrementViews(ctx, videoID); err != nil {
		return err
	}

	video, err := h.videoRepository.GetVideoWithOwner(ctx, videoID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return web.NewError(http.StatusNotFound, "Video not found")
		}
		return err
	}

	if err := h.userRepository.AddVideoToWatchHistory(ctx, userID, videoID); err != nil {
		h.log.Warn().Err(err).Str("video_id", videoID.Hex()).Msg("failed to record watch history")
	}

	return web.Respond(c, http.StatusOK, video, "Video fetched successfully")
}

// UpdateVideo updates title, description, visibility and optionally the thumbnail.
func (h *VideoHandler) UpdateVideo(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	videoID, err := parseObjectID(c, "videoId", "video ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	video, err := h.videoRepository.GetVideoByID(ctx, videoID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return web.NewError(http.StatusNotFound, "Video not found")
		}
		return err
	}
	if video.Owner != userID {
		return web.NewError(http.StatusUnauthorized, "You do not have permission to perform this action on this resource")
	}

	if title := strings.TrimSpace(c.FormValue("title")); title != "" {
		video.Title = title
	}
	if description := c.FormValue("description"); description != "" {
		video.Description = description
	}
	if visibility := c.FormValue("visibility"); visibility != "" {
		video.IsPublished = visibility == "public"
	}

	if thumbnailFile, err := c.FormFile("thumbnail"); err == nil {
		thumbnailPath, err := saveTempFile(thumbnailFile)
		if err != nil {
			return web.NewError(http.StatusInternalServerError, "Something went wrong while uploading thumbnail")
		}
		asset, err := h.media.Upload(ctx, thumbnailPath)
		if err != nil {
			return web.NewError(http.StatusInternalServerError, "Something went wrong while uploading thumbnail")
		}
		h.deleteAsset(c, video.Thumbnail)
		video.Thumbnail = asset.URL
	}

	if err := h.videoRepository.UpdateVideo(ctx, video); err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, video, "Video details updated successfully")
}

// DeleteVideo removes the video, its remote assets, and everything that
// references it: comments, likes and playlist entries.
func (h *VideoHandler) DeleteVideo(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	videoID, err := parseObjectID(c, "videoId", "video ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	video, err := h.videoRepository.GetVideoByID(ctx, videoID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return web.NewError(http.StatusNotFound, "Video not found")
		}
		return err
	}
	if video.Owner != userID {
		return web.NewError(http.StatusUnauthorized, "You do not have permission to perform this action on this resource")
	}

	h.deleteAsset(c, video.VideoFile)
	h.deleteAsset(c, video.Thumbnail)

	if err := h.videoRepository.DeleteVideo(ctx, videoID); err != nil {
		return err
	}

	commentIDs, err := h.commentRepository.DeleteCommentsByVideo(ctx, videoID)
	if err != nil {
		h.log.Warn().Err(err).Str("video_id", videoID.Hex()).Msg("failed to delete video comments")
	}
	if err := h.likeRepository.DeleteByTargets(ctx, models.LikeTargetVideo, []primitive.ObjectID{videoID}); err != nil {
		h.log.Warn().Err(err).Str("video_id", videoID.Hex()).Msg("failed to delete video likes")
	}
	if err := h.likeRepository.DeleteByTargets(ctx, models.LikeTargetComment, commentIDs); err != nil {
		h.log.Warn().Err(err).Str("video_id", videoID.Hex()).Msg("failed to delete comment likes")
	}
	if err := h.playlistRepository.PullVideoFromAll(ctx, videoID); err != nil {
		h.log.Warn().Err(err).Str("video_id", videoID.Hex()).Msg("failed to remove video from playlists")
	}

	return web.Respond(c, http.StatusOK, nil, "Video deleted successfully")
}

// TogglePublishStatus flips the isPublished flag of a video.
func (h *VideoHandler) TogglePublishStatus(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}
	videoID, err := parseObjectID(c, "videoId", "video ID")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	video, err := h.videoRepository.GetVideoByID(ctx, videoID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrVideoNotFound) {
			return web.NewError(http.StatusNotFound, "Video not found")
		}
		return err
	}
	if video.Owner != userID {
		return web.NewError(http.StatusUnauthorized, "You do not have permission to perform this action on this resource")
	}

	video.IsPublished = !video.IsPublished
	if err := h.videoRepository.UpdateVideo(ctx, video); err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, video, "Video publish status toggled successfully")
}

// deleteAsset forwards a stored asset URL to the media service for deletion.
// Failures are logged and swallowed; they never fail the request.
func (h *VideoHandler) deleteAsset(c echo.Context, assetURL string) {
	if assetURL == "" {
		return
	}
	publicID := media.ExtractPublicID(assetURL)
	if err := h.media.Delete(c.Request().Context(), publicID); err != nil {
		h.log.Warn().Err(err).Str("public_id", publicID).Msg("failed to delete remote asset")
	}
}
