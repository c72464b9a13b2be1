package handlers

import (
	"net/http"

	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to the viewer's own account
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.DELETE("/profile", h.DeleteUser, requireAuth)
}

// DeleteUser removes the authenticated user with all posts, comments and follows
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.users.DeleteUser(c.Request().Context(), middleware.UserIDFromContext(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
