package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnuragSingh2101/backend/internal/middleware"
	"github.com/AnuragSingh2101/backend/internal/web"
)

func testEcho() *echo.Echo {
	e := echo.New()
	e.Validator = web.NewValidator()
	return e
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// newTestContext builds an echo context for a request with an optional JSON
// body, authenticated as userID when it is non-nil.
func newTestContext(e *echo.Echo, method, target, body string, userID *primitive.ObjectID) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		middleware.SetUserID(c, *userID)
	}
	return c, rec
}

func setParams(c echo.Context, names []string, values []string) {
	c.SetParamNames(names...)
	c.SetParamValues(values...)
}

// statusOfError extracts the HTTP status a handler error would surface as.
func statusOfError(t *testing.T, err error) int {
	t.Helper()
	switch e := err.(type) {
	case *web.Error:
		return e.Code
	case *echo.HTTPError:
		return e.Code
	default:
		t.Fatalf("expected a status-carrying error, got %v", err)
		return 0
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) web.Response {
	t.Helper()
	var resp web.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return resp
}
