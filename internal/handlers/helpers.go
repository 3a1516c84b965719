package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnuragSingh2101/backend/internal/middleware"
	"github.com/AnuragSingh2101/backend/internal/models"
	"github.com/AnuragSingh2101/backend/internal/web"
)

// actingUserID extracts the authenticated user's id stored by the JWT middleware.
func actingUserID(c echo.Context) (primitive.ObjectID, error) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return primitive.NilObjectID, web.NewError(http.StatusUnauthorized, "Unauthorized request")
	}
	return userID, nil
}

// parseObjectID validates a route parameter as a Mongo object id.
func parseObjectID(c echo.Context, param, label string) (primitive.ObjectID, error) {
	id := c.Param(param)
	if id == "" {
		return primitive.NilObjectID, web.NewError(http.StatusBadRequest, label+" is missing")
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, web.NewError(http.StatusBadRequest, "Invalid "+label)
	}
	return objID, nil
}

// parsePagination coerces the page/limit query parameters, applying the
// defaults and the upper bound.
func parsePagination(c echo.Context) (page, limit int64) {
	page, _ = strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	return models.ClampPage(page, limit)
}

// saveTempFile copies an uploaded multipart file to a local temporary path,
// preserving the extension, so it can be forwarded to the media service.
func saveTempFile(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return dst.Name(), nil
}
