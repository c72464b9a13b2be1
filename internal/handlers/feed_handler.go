package handlers

import (
	"net/http"

	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the paginated post listings
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/posts", h.Index)
	g.GET("/group/:slug", h.GroupPosts)
	g.GET("/profile/:username", h.Profile)
	g.GET("/follow", h.FollowIndex, requireAuth)
}

// Index is the global feed
func (h *FeedHandler) Index(c echo.Context) error {
	page, err := h.feed.ListAll(c.Request().Context(), c.QueryParam("page"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse(page, nil))
}

func (h *FeedHandler) GroupPosts(c echo.Context) error {
	feed, err := h.feed.ListByGroup(c.Request().Context(), c.Param("slug"), c.QueryParam("page"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse(feed.Page, echo.Map{"group": feed.Group}))
}

func (h *FeedHandler) Profile(c echo.Context) error {
	viewerID := middleware.UserIDFromContext(c)
	feed, err := h.feed.ListByAuthor(c.Request().Context(), c.Param("username"), viewerID, c.QueryParam("page"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse(feed.Page, echo.Map{
		"profile":         feed.Author,
		"following":       feed.IsFollowing,
		"followers_count": feed.FollowersCount,
		"following_count": feed.FollowingCount,
	}))
}

// FollowIndex lists posts of the authors the viewer follows
func (h *FeedHandler) FollowIndex(c echo.Context) error {
	page, err := h.feed.ListFollowed(c.Request().Context(), middleware.UserIDFromContext(c), c.QueryParam("page"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse(page, nil))
}

func pageResponse(page *services.PostPage, extra echo.Map) echo.Map {
	data := echo.Map{"posts": page.Items}
	for k, v := range extra {
		data[k] = v
	}
	return echo.Map{
		"success": true,
		"data":    data,
		"meta": echo.Map{
			"currentPage":     page.Number,
			"totalPages":      page.NumPages,
			"totalItems":      page.Count,
			"itemsPerPage":    page.PerPage,
			"hasNextPage":     page.HasNext(),
			"hasPreviousPage": page.HasPrevious(),
		},
	}
}
