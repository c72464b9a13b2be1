package handlers

import (
	"net/http"

	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	follows *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(follows *services.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/profile/:username/follow", h.FollowUser, requireAuth)
	g.DELETE("/profile/:username/follow", h.UnfollowUser, requireAuth)
}

// FollowUser follows a user. Following yourself or someone already followed
// succeeds without creating anything.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	created, err := h.follows.Follow(c.Request().Context(), middleware.UserFromContext(c), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"created": created}})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	if err := h.follows.Unfollow(c.Request().Context(), middleware.UserIDFromContext(c), c.Param("username")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}
