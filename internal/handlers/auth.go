package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler exchanges Firebase identities for local JWTs
type AuthHandler struct {
	users     *services.UserService
	jwtSecret string
	jwtTTL    time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users *services.UserService, jwtSecret string, jwtTTL time.Duration) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, verifier middleware.IDTokenVerifier) {
	g.POST("/firebase-login", h.FirebaseLogin, middleware.FirebaseAuthMiddleware(verifier))
}

// FirebaseLogin issues a local JWT for a verified Firebase ID token. The
// first login must pick a username.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	token, ok := middleware.FirebaseTokenFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing Firebase token")
	}

	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	id := services.Identity{FirebaseUID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		id.Name = name
	}

	user, err := h.users.ResolveFirebaseUser(c.Request().Context(), id, req.Username)
	if err != nil {
		return err
	}

	localJWT, err := middleware.SignToken(user, h.jwtSecret, h.jwtTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate local JWT")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": localJWT, "user": user.ToCompact()})
}
