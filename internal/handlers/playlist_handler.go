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

// PlaylistHandler handles HTTP requests related to playlists
type PlaylistHandler struct {
	playlistRepository repositories.PlaylistRepository
	videoRepository    repositories.VideoRepository
}

// NewPlaylistHandler creates a new PlaylistHandler
func NewPlaylistHandler(playlistRepo repositories.PlaylistRepository, videoRepo repositories.VideoRepository) *PlaylistHandler {
	return &PlaylistHandler{
		playlistRepository: playlistRepo,
		videoRepository:    videoRepo,
	}
}

// RegisterPlaylistRoutes registers playlist-related routes
func (h *PlaylistHandler) RegisterPlaylistRoutes(g *echo.Group) {
	g.POST("/playlist", h.CreatePlaylist)
	g.GET("/playlist/:playlistId", h.GetPlaylist)
	g.PATCH("/playlist/:playlistId", h.UpdatePlaylist)
	g.DELETE("/playlist/:playlistId", h.DeletePlaylist)
	g.PATCH("/playlist/add/:videoId/:playlistId", h.AddVideoToPlaylist)
	g.PATCH("/playlist/remove/:videoId/:playlistId", h.RemoveVideoFromPlaylist)
	g.GET("/playlist/user/:userId", h.GetUserPlaylists)
}

// CreatePlaylist creates an empty playlist owned by the acting user.
func (h *PlaylistHandler) CreatePlaylist(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePlaylistRequest
	if err := c.Bind(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Name and description are required")
	}

	playlist := &models.Playlist{
		Name:        req.Name,
		Description: req.Description,
		Owner:       userID,
		Videos:      []primitive.ObjectID{},
	}
	if err := h.playlistRepository.CreatePlaylist(c.Request().Context(), playlist); err != nil {
		return err
	}
	return web.Respond(c, http.StatusCreated, playlist, "Playlist created successfully")
}

// GetPlaylist returns a playlist with its videos resolved.
func (h *PlaylistHandler) GetPlaylist(c echo.Context) error {
	playlistID, err := parseObjectID(c, "playlistId", "playlist ID")
	if err != nil {
		return err
	}

	playlist, err := h.playlistRepository.GetPlaylistWithVideos(c.Request().Context(), playlistID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlaylistNotFound) {
			return web.NewError(http.StatusNotFound, "Playlist not found")
		}
		return err
	}
	return web.Respond(c, http.StatusOK, playlist, "Playlist fetched successfully")
}

// GetUserPlaylists lists a user's playlists.
func (h *PlaylistHandler) GetUserPlaylists(c echo.Context) error {
	userID, err := parseObjectID(c, "userId", "user ID")
	if err != nil {
		return err
	}

	playlists, err := h.playlistRepository.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, playlists, "User playlists fetched successfully")
}

// AddVideoToPlaylist appends a published video to an owned playlist.
func (h *PlaylistHandler) AddVideoToPlaylist(c echo.Context) error {
	playlist, videoID, err := h.ownedPlaylistAndVideoID(c)
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
	if !video.IsPublished {
		return web.NewError(http.StatusBadRequest, "Video is not published")
	}
	for _, id := range playlist.Videos {
		if id == videoID {
			return web.NewError(http.StatusBadRequest, "Video already exists in this playlist")
		}
	}

	if err := h.playlistRepository.AddVideo(ctx, playlist.ID, videoID); err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, nil, "Video added to playlist successfully")
}

// RemoveVideoFromPlaylist removes a video from an owned playlist.
func (h *PlaylistHandler) RemoveVideoFromPlaylist(c echo.Context) error {
	playlist, videoID, err := h.ownedPlaylistAndVideoID(c)
	if err != nil {
		return err
	}

	found := false
	for _, id := range playlist.Videos {
		if id == videoID {
			found = true
			break
		}
	}
	if !found {
		return web.NewError(http.StatusNotFound, "Video not found in playlist")
	}

	if err := h.playlistRepository.RemoveVideo(c.Request().Context(), playlist.ID, videoID); err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, nil, "Video removed from playlist successfully")
}

// UpdatePlaylist updates an owned playlist's name and/or description.
func (h *PlaylistHandler) UpdatePlaylist(c echo.Context) error {
	playlist, err := h.ownedPlaylist(c)
	if err != nil {
		return err
	}

	var req models.UpdatePlaylistRequest
	if err := c.Bind(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Invalid request payload")
	}
	if req.Name == "" && req.Description == "" {
		return web.NewError(http.StatusBadRequest, "At least one field (name or description) is required")
	}

	updated, err := h.playlistRepository.UpdatePlaylist(c.Request().Context(), playlist.ID, req.Name, req.Description)
	if err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, updated, "Playlist updated successfully")
}

// DeletePlaylist deletes an owned playlist.
func (h *PlaylistHandler) DeletePlaylist(c echo.Context) error {
	playlist, err := h.ownedPlaylist(c)
	if err != nil {
		return err
	}

	if err := h.playlistRepository.DeletePlaylist(c.Request().Context(), playlist.ID); err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, nil, "Playlist deleted successfully")
}

// ownedPlaylist resolves the playlistId parameter and enforces ownership.
func (h *PlaylistHandler) ownedPlaylist(c echo.Context) (*models.Playlist, error) {
	userID, err := actingUserID(c)
	if err != nil {
		return nil, err
	}
	playlistID, err := parseObjectID(c, "playlistId", "playlist ID")
	if err != nil {
		return nil, err
	}

	playlist, err := h.playlistRepository.GetPlaylistByID(c.Request().Context(), playlistID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrPlaylistNotFound) {
			return nil, web.NewError(http.StatusNotFound, "Playlist not found")
		}
		return nil, err
	}
	if playlist.Owner != userID {
		return nil, web.NewError(http.StatusUnauthorized, "Unauthorized access")
	}
	return playlist, nil
}

func (h *PlaylistHandler) ownedPlaylistAndVideoID(c echo.Context) (*models.Playlist, primitive.ObjectID, error) {
	videoID, err := parseObjectID(c, "videoId", "video ID")
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	playlist, err := h.ownedPlaylist(c)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	return playlist, videoID, nil
}
