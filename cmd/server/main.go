package main

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/AnuragSingh2101/backend/internal/media"
	"github.com/AnuragSingh2101/backend/internal/router"
	"github.com/AnuragSingh2101/backend/internal/web"
	"github.com/AnuragSingh2101/backend/pkg/config"
	"github.com/AnuragSingh2101/backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, "videotube-api")

	db, err := config.InitDB(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.CloseDB()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	mediaSvc, err := media.NewMinioStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize media storage")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = web.NewValidator()
	e.HTTPErrorHandler = web.ErrorHandler(log)

	router.Setup(e, db, mediaSvc, cfg, log)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
