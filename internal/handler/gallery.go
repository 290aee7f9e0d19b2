package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/quai-antique/restaurant-reservation/internal/repository"
)

// GalleryHandler serves the public gallery and the admin CRUD behind it.
type GalleryHandler struct {
    Gallery *repository.GalleryRepo
}

func NewGalleryHandler(g *repository.GalleryRepo) *GalleryHandler { return &GalleryHandler{Gallery: g} }

type galleryReq struct {
    Title    string `json:"title"`
    ImageURL string `json:"image_url"`
}

// List handles GET /v1/gallery.
func (h *GalleryHandler) List(c echo.Context) error {
    images, err := h.Gallery.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load gallery"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": images})
}

// Create handles POST /v1/admin/gallery.
func (h *GalleryHandler) Create(c echo.Context) error {
    var req galleryReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Title = strings.TrimSpace(req.Title)
    req.ImageURL = strings.TrimSpace(req.ImageURL)
    if req.Title == "" || req.ImageURL == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and image_url are required"})
    }
    id, err := h.Gallery.Create(c.Request().Context(), req.Title, req.ImageURL)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create image"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// Update handles PUT /v1/admin/gallery/:id.
func (h *GalleryHandler) Update(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image id"})
    }
    var req galleryReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Title = strings.TrimSpace(req.Title)
    req.ImageURL = strings.TrimSpace(req.ImageURL)
    if req.Title == "" || req.ImageURL == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and image_url are required"})
    }
    if err := h.Gallery.Update(c.Request().Context(), id, req.Title, req.ImageURL); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update image"})
    }
    return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/admin/gallery/:id.
func (h *GalleryHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image id"})
    }
    if err := h.Gallery.Delete(c.Request().Context(), id); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete image"})
    }
    return c.NoContent(http.StatusNoContent)
}
