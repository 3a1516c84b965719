package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/AnuragSingh2101/backend/internal/handlers"
	"github.com/AnuragSingh2101/backend/internal/media"
	"github.com/AnuragSingh2101/backend/internal/middleware"
	"github.com/AnuragSingh2101/backend/internal/repositories"
	"github.com/AnuragSingh2101/backend/pkg/config"
)

// Setup wires the repositories, handlers and middleware onto the Echo
// instance under /api/v1.
func Setup(e *echo.Echo, db *config.DB, mediaSvc media.Service, cfg *config.Config, log zerolog.Logger) {
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	}))

	userRepo := repositories.NewMongoUserRepository(db.Database)
	videoRepo := repositories.NewMongoVideoRepository(db.Database)
	commentRepo := repositories.NewMongoCommentRepository(db.Database)
	likeRepo := repositories.NewMongoLikeRepository(db.Database)
	subscriptionRepo := repositories.NewMongoSubscriptionRepository(db.Database)
	playlistRepo := repositories.NewMongoPlaylistRepository(db.Database)
	tweetRepo := repositories.NewMongoTweetRepository(db.Database)

	userHandler := handlers.NewUserHandler(userRepo, videoRepo, mediaSvc, cfg.AccessTokenSecret, cfg.AccessTokenExpiry)
	videoHandler := handlers.NewVideoHandler(videoRepo, commentRepo, likeRepo, playlistRepo, userRepo, mediaSvc, log)
	commentHandler := handlers.NewCommentHandler(commentRepo, videoRepo, likeRepo, log)
	likeHandler := handlers.NewLikeHandler(likeRepo, videoRepo, commentRepo, tweetRepo)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionRepo, userRepo)
	playlistHandler := handlers.NewPlaylistHandler(playlistRepo, videoRepo)
	tweetHandler := handlers.NewTweetHandler(tweetRepo, likeRepo, log)
	dashboardHandler := handlers.NewDashboardHandler(videoRepo, subscriptionRepo, likeRepo)

	api := e.Group("/api/v1")
	api.GET("/healthcheck", handlers.HealthCheck)

	// The register route carries multipart uploads, so the JSON body cap
	// applies to login only.
	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login, echomw.BodyLimit("16K"))

	protected := api.Group("", middleware.JWTAuthMiddleware(cfg.AccessTokenSecret))
	userHandler.RegisterUserRoutes(protected)
	videoHandler.RegisterVideoRoutes(protected)

	// Everything below is JSON-only, so the body cap applies across the board.
	jsonAPI := api.Group("", middleware.JWTAuthMiddleware(cfg.AccessTokenSecret), echomw.BodyLimit("16K"))
	commentHandler.RegisterCommentRoutes(jsonAPI)
	likeHandler.RegisterLikeRoutes(jsonAPI)
	subscriptionHandler.RegisterSubscriptionRoutes(jsonAPI)
	playlistHandler.RegisterPlaylistRoutes(jsonAPI)
	tweetHandler.RegisterTweetRoutes(jsonAPI)
	dashboardHandler.RegisterDashboardRoutes(jsonAPI)
}
