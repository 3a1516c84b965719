package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnuragSingh2101/backend/internal/media"
	"github.com/AnuragSingh2101/backend/internal/middleware"
	"github.com/AnuragSingh2101/backend/internal/models"
	"github.com/AnuragSingh2101/backend/internal/repositories"
	"github.com/AnuragSingh2101/backend/internal/web"
)

// UserHandler handles registration, sessions and profile lookups.
type UserHandler struct {
	userRepository  repositories.UserRepository
	videoRepository repositories.VideoRepository
	media           media.Service
	jwtSecret       string
	tokenExpiry     time.Duration
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, videoRepo repositories.VideoRepository, mediaSvc media.Service, jwtSecret, tokenExpiry string) *UserHandler {
	expiry, err := time.ParseDuration(tokenExpiry)
	if err != nil {
		expiry = 24 * time.Hour
	}
	return &UserHandler{
		userRepository:  userRepo,
		videoRepository: videoRepo,
		media:           mediaSvc,
		jwtSecret:       jwtSecret,
		tokenExpiry:     expiry,
	}
}

// RegisterUserRoutes registers the session-protected user routes. Register
// and Login stay out of this group; the router mounts them without the JWT
// middleware.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users/logout", h.Logout)
	g.GET("/users/current-user", h.CurrentUser)
	g.GET("/users/history", h.WatchHistory)
	g.GET("/users/:userId", h.GetUser)
}

type registerForm struct {
	FullName string `validate:"required,min=1,max=100"`
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=2,max=50"`
	Password string `validate:"required,min=8"`
}

// Register creates a new account with an avatar and optional cover image.
func (h *UserHandler) Register(c echo.Context) error {
	form := registerForm{
		FullName: strings.TrimSpace(c.FormValue("fullName")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Username: strings.ToLower(strings.TrimSpace(c.FormValue("username"))),
		Password: c.FormValue("password"),
	}
	if form.FullName == "" || form.Email == "" || form.Username == "" || form.Password == "" {
		return web.NewError(http.StatusBadRequest, "All fields are required")
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.userRepository.GetUserByEmailOrUsername(ctx, form.Email, form.Username); err == nil {
		return web.NewError(http.StatusConflict, "User already exists with this email or username")
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		return web.NewError(http.StatusBadRequest, "Avatar file is required")
	}
	avatar, err := h.uploadFormFile(c, avatarFile)
	if err != nil {
		return web.NewError(http.StatusInternalServerError, "Something went wrong while uploading avatar")
	}

	var coverImageURL string
	if coverFile, err := c.FormFile("coverImage"); err == nil {
		cover, err := h.uploadFormFile(c, coverFile)
		if err != nil {
			return web.NewError(http.StatusInternalServerError, "Something went wrong while uploading cover image")
		}
		coverImageURL = cover.URL
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return web.NewError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		FullName:   form.FullName,
		Email:      form.Email,
		Username:   form.Username,
		Password:   string(hashedPassword),
		Avatar:     avatar.URL,
		CoverImage: coverImageURL,
	}
	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		return err
	}

	return web.Respond(c, http.StatusCreated, user, "User registered successfully")
}

// Login verifies credentials and issues the session token, both in the body
// and as the accessToken cookie.
func (h *UserHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return web.NewError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Email == "" && req.Username == "" {
		return web.NewError(http.StatusBadRequest, "Email or username is required")
	}

	user, err := h.userRepository.GetUserByEmailOrUsername(c.Request().Context(), req.Email, strings.ToLower(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return web.NewError(http.StatusNotFound, "User does not exist")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return web.NewError(http.StatusUnauthorized, "Invalid user credentials")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return web.NewError(http.StatusInternalServerError, "Failed to generate token")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenExpiry),
		HttpOnly: true,
	})

	return web.Respond(c, http.StatusOK, echo.Map{"user": user, "accessToken": token}, "User logged in successfully")
}

// Logout clears the session cookie.
func (h *UserHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return web.Respond(c, http.StatusOK, nil, "User logged out successfully")
}

// CurrentUser returns the acting user's profile.
func (h *UserHandler) CurrentUser(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return web.NewError(http.StatusNotFound, "User not found")
		}
		return err
	}
	return web.Respond(c, http.StatusOK, user, "Current user fetched successfully")
}

// GetUser retrieves a user's profile by id.
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := parseObjectID(c, "userId", "user ID")
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(c.Request().Context(), userID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return web.NewError(http.StatusNotFound, "User not found")
		}
		return err
	}
	return web.Respond(c, http.StatusOK, user, "User fetched successfully")
}

// WatchHistory resolves the acting user's watch history to video documents.
func (h *UserHandler) WatchHistory(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByID(ctx, userID.Hex())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return web.NewError(http.StatusNotFound, "User not found")
		}
		return err
	}

	if len(user.WatchHistory) == 0 {
		return web.Respond(c, http.StatusOK, []models.Video{}, "No videos in watch history")
	}

	videos, err := h.videoRepository.GetVideosByIDs(ctx, user.WatchHistory)
	if err != nil {
		return err
	}
	return web.Respond(c, http.StatusOK, videos, "Watch history fetched successfully")
}

func (h *UserHandler) uploadFormFile(c echo.Context, fh *multipart.FileHeader) (*media.Asset, error) {
	localPath, err := saveTempFile(fh)
	if err != nil {
		return nil, err
	}
	return h.media.Upload(c.Request().Context(), localPath)
}

// generateJWT generates a session token for a given user
func (h *UserHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
