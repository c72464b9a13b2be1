package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/anonto42/yatube/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// MediaHandler streams stored post images
type MediaHandler struct {
	images storage.ImageStore
}

func NewMediaHandler(images storage.ImageStore) *MediaHandler {
	return &MediaHandler{images: images}
}

func (h *MediaHandler) RegisterMediaRoutes(e *echo.Echo) {
	e.GET("/media/posts/:name", h.GetImage)
}

func (h *MediaHandler) GetImage(c echo.Context) error {
	rc, contentType, err := h.images.Open(c.Request().Context(), storage.ImagePrefix+c.Param("name"))
	if errors.Is(err, storage.ErrImageNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Image not found")
	}
	if err != nil {
		return err
	}
	defer rc.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, io.Reader(rc))
}
