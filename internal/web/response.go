package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Response is the envelope every successful handler reply is wrapped in.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse is the envelope every failed handler reply is wrapped in.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// Respond writes the success envelope with the given status code.
func Respond(c echo.Context, code int, data interface{}, message string) error {
	return c.JSON(code, Response{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error is a domain error carrying the HTTP status code it should surface as.
type Error struct {
	Code    int    `json:"statusCode"`
	Message string `json:"message"`
}

// NewError creates an Error. Arguments are always (code, message).
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// ErrorHandler returns an echo.HTTPErrorHandler that renders every error as
// the error envelope. Store and media failures reach it as plain errors and
// surface as 500s.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Internal Server Error"

		switch e := err.(type) {
		case *Error:
			code = e.Code
			message = e.Message
		case *echo.HTTPError:
			code = e.Code
			if m, ok := e.Message.(string); ok {
				message = m
			}
		default:
			message = err.Error()
		}

		if code >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, ErrorResponse{StatusCode: code, Message: message, Success: false})
	}
}
