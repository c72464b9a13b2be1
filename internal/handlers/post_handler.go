package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/anonto42/yatube/backend/internal/middleware"
	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/services"
	"github.com/anonto42/yatube/backend/pkg/apperrors"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts", h.CreatePost, requireAuth)
	g.GET("/posts/:username/:id", h.GetPost)
	g.PUT("/posts/:username/:id", h.EditPost, requireAuth)
}

// CreatePost accepts JSON or multipart/form-data with an optional "image" file
func (h *PostHandler) CreatePost(c echo.Context) error {
	fields, image, err := bindPostFields(c)
	if err != nil {
		return err
	}
	if image != nil {
		defer image.Close()
	}

	req := models.CreatePostRequest{Text: fields.Text, GroupID: fields.GroupID}
	post, err := h.posts.CreatePost(c.Request().Context(), middleware.UserIDFromContext(c), req, image.upload())
	if err != nil {
		return uploadError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost is the single post view with its comments
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.posts.GetPost(c.Request().Context(), c.Param("username"), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// EditPost updates a post. Anyone but the author is sent back to the post view.
func (h *PostHandler) EditPost(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	username := c.Param("username")

	ctx := c.Request().Context()
	if _, err := h.posts.GetPost(ctx, username, id); err != nil {
		return err
	}

	fields, image, err := bindPostFields(c)
	if err != nil {
		return err
	}
	if image != nil {
		defer image.Close()
	}

	req := models.UpdatePostRequest{Text: fields.Text, GroupID: fields.GroupID, ClearImage: fields.ClearImage}
	post, applied, err := h.posts.EditPost(ctx, id, middleware.UserIDFromContext(c), req, image.upload())
	if err != nil {
		return uploadError(err)
	}
	if !applied {
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/api/v1/posts/%s/%d", username, id))
	}
	return c.JSON(http.StatusOK, post)
}

type postFields struct {
	Text       string `json:"text"`
	GroupID    *uint  `json:"group_id,omitempty"`
	ClearImage bool   `json:"clear_image,omitempty"`
}

// openedImage is an uploaded file that has been opened but not stored yet.
type openedImage struct {
	header *multipart.FileHeader
	file   multipart.File
}

func (o *openedImage) upload() *services.ImageUpload {
	if o == nil {
		return nil
	}
	return &services.ImageUpload{
		Filename:    o.header.Filename,
		ContentType: o.header.Header.Get(echo.HeaderContentType),
		Body:        o.file,
	}
}

func (o *openedImage) Close() error {
	return o.file.Close()
}

func bindPostFields(c echo.Context) (postFields, *openedImage, error) {
	var fields postFields

	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if err := c.Bind(&fields); err != nil {
			return fields, nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
		}
		return fields, nil, nil
	}

	fields.Text = c.FormValue("text")
	if raw := strings.TrimSpace(c.FormValue("group_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return fields, nil, apperrors.NewValidation(map[string]string{"group_id": "Select a valid choice."})
		}
		groupID := uint(id)
		fields.GroupID = &groupID
	}
	switch raw := strings.TrimSpace(c.FormValue("clear_image")); raw {
	case "":
	case "on":
		fields.ClearImage = true
	default:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fields, nil, apperrors.NewValidation(map[string]string{"clear_image": "Enter a valid boolean."})
		}
		fields.ClearImage = v
	}

	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return fields, nil, nil
	}
	if err != nil {
		return fields, nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid image upload")
	}
	file, err := header.Open()
	if err != nil {
		return fields, nil, fmt.Errorf("open upload: %w", err)
	}
	return fields, &openedImage{header: header, file: file}, nil
}

func uploadError(err error) error {
	if errors.Is(err, services.ErrImagesDisabled) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Image uploads are disabled")
	}
	return err
}
