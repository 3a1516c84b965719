package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnuragSingh2101/backend/internal/models"
)

// AccessTokenCookie is the cookie the session token travels in.
const AccessTokenCookie = "accessToken"

const userIDKey = "userID"

// JWTAuthMiddleware checks for a valid JWT — carried in the accessToken
// cookie or a bearer header — and stores the acting user's id on the context.
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := tokenFromRequest(c)
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized request")
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token")
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid access token")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// SetUserID stores an acting user id on the context, the same way
// JWTAuthMiddleware does after verifying a token.
func SetUserID(c echo.Context, id primitive.ObjectID) {
	c.Set(userIDKey, id)
}

// UserIDFromContext returns the acting user's id stored by JWTAuthMiddleware.
func UserIDFromContext(c echo.Context) (primitive.ObjectID, bool) {
	id, ok := c.Get(userIDKey).(primitive.ObjectID)
	return id, ok
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}
