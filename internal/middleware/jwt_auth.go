package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const viewerKey = "viewer"

var errNoToken = errors.New("missing Authorization header")

// UserLookup resolves the subject of a token to a stored user.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token or whose
// user no longer exists.
func JWTAuthMiddleware(secret string, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if UserFromContext(c) != nil {
				return next(c)
			}
			claims, err := parseBearer(c.Request().Header.Get("Authorization"), secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			if err := authenticate(c, claims, users); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OptionalJWTAuthMiddleware lets anonymous requests through but still
// rejects a malformed or invalid token.
func OptionalJWTAuthMiddleware(secret string, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearer(c.Request().Header.Get("Authorization"), secret)
			if errors.Is(err, errNoToken) {
				return next(c)
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			if err := authenticate(c, claims, users); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func authenticate(c echo.Context, claims *models.JwtCustomClaims, users UserLookup) error {
	user, err := users.GetUserByID(c.Request().Context(), claims.UserID)
	if repositories.IsNotFound(err) {
		return echo.NewHTTPError(http.StatusUnauthorized, "user no longer exists")
	}
	if err != nil {
		return fmt.Errorf("resolve token user: %w", err)
	}
	c.Set(viewerKey, user)
	return nil
}

// UserFromContext returns the authenticated user, or nil for anonymous viewers.
func UserFromContext(c echo.Context) *models.User {
	user, _ := c.Get(viewerKey).(*models.User)
	return user
}

// UserIDFromContext returns the authenticated user id, or 0 for anonymous viewers.
func UserIDFromContext(c echo.Context) uint {
	if user := UserFromContext(c); user != nil {
		return user.ID
	}
	return 0
}

// SignToken issues an HS256 token for user valid for ttl.
func SignToken(user *models.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseBearer(header, secret string) (*models.JwtCustomClaims, error) {
	if header == "" {
		return nil, errNoToken
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errors.New("invalid Authorization header format")
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
