package handlers

import (
	"net/http"

	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *services.CommentService
	posts    *services.PostService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService, posts *services.PostService) *CommentHandler {
	return &CommentHandler{comments: comments, posts: posts}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:username/:id/comments", h.CreateComment, requireAuth)
	g.GET("/posts/:username/:id/comments", h.GetComments)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.posts.GetPost(ctx, c.Param("username"), postID); err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	comment, err := h.comments.AddComment(ctx, postID, middleware.UserIDFromContext(c), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetComments lists the comments of a post, oldest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if _, err := h.posts.GetPost(ctx, c.Param("username"), postID); err != nil {
		return err
	}

	comments, err := h.comments.ListComments(ctx, postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}
