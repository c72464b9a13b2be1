package handlers

import (
	"net/http"

	"github.com/anonto42/yatube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// GroupHandler lists groups
type GroupHandler struct {
	groups *services.GroupService
}

func NewGroupHandler(groups *services.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

func (h *GroupHandler) RegisterGroupRoutes(g *echo.Group) {
	g.GET("/groups", h.ListGroups)
}

func (h *GroupHandler) ListGroups(c echo.Context) error {
	groups, err := h.groups.ListGroups(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}
