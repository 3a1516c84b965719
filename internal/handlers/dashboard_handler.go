package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AnuragSingh2101/backend/internal/models"
	"github.com/AnuragSingh2101/backend/internal/repositories"
	"github.com/AnuragSingh2101/backend/internal/web"
)

// DashboardHandler serves the channel dashboard: aggregate stats and the
// channel's full video list.
type DashboardHandler struct {
	videoRepository        repositories.VideoRepository
	subscriptionRepository repositories.SubscriptionRepository
	likeRepository         repositories.LikeRepository
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(videoRepo repositories.VideoRepository, subRepo repositories.SubscriptionRepository, likeRepo repositories.LikeRepository) *DashboardHandler {
	return &DashboardHandler{
		videoRepository:        videoRepo,
		subscriptionRepository: subRepo,
		likeRepository:         likeRepo,
	}
}

// RegisterDashboardRoutes registers dashboard-related routes
func (h *DashboardHandler) RegisterDashboardRoutes(g *echo.Group) {
	g.GET("/dashboard/stats/:channelId", h.GetChannelStats)
	g.GET("/dashboard/videos/:channelId", h.GetChannelVideos)
}

// GetChannelStats returns a channel's totals: videos, views, subscribers and
// likes.
func (h *DashboardHandler) GetChannelStats(c echo.Context) error {
	channelID, err := parseObjectID(c, "channelId", "channel ID")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	totalVideos, err := h.videoRepository.CountByOwner(ctx, channelID)
	if err != nil {
		return err
	}
	totalViews, err := h.videoRepository.SumViewsByOwner(ctx, channelID)
	if err != nil {
		return err
	}
	totalSubscribers, err := h.subscriptionRepository.CountByChannel(ctx, channelID)
	if err != nil {
		return err
	}
	totalLikes, err := h.likeRepository.CountLikesForChannelVideos(ctx, channelID)
	if err != nil {
		return err
	}

	stats := models.ChannelStats{
		TotalVideos:      totalVideos,
		TotalViews:       totalViews,
		TotalSubscribers: totalSubscribers,
		TotalLikes:       totalLikes,
	}
	return web.Respond(c, http.StatusOK, stats, "Channel stats fetched successfully")
}

type channelVideoPage struct {
	models.PageMeta
	Videos []models.Video `json:"videos"`
}

// GetChannelVideos lists every video a channel has uploaded, published or
// not, newest first.
func (h *DashboardHandler) GetChannelVideos(c echo.Context) error {
	channelID, err := parseObjectID(c, "channelId", "channel ID")
	if err != nil {
		return err
	}
	page, limit := parsePagination(c)

	videos, total, err := h.videoRepository.ListChannelVideos(c.Request().Context(), channelID, page, limit)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return web.NewError(http.StatusNotFound, "No videos found for this channel.")
	}

	result := channelVideoPage{
		PageMeta: models.NewPageMeta(total, page, limit, len(videos)),
		Videos:   videos,
	}
	return web.Respond(c, http.StatusOK, result, "Channel videos fetched successfully")
}
