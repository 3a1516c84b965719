package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AnuragSingh2101/backend/internal/web"
)

func HealthCheck(c echo.Context) error {
	return web.Respond(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
