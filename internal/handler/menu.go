package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/quai-antique/restaurant-reservation/internal/repository"
)

// MenuHandler serves the public menu and the admin CRUD behind it.
type MenuHandler struct {
    Menu *repository.MenuRepo
}

func NewMenuHandler(m *repository.MenuRepo) *MenuHandler { return &MenuHandler{Menu: m} }

// ListCategories handles GET /v1/menu/categories.
func (h *MenuHandler) ListCategories(c echo.Context) error {
    cats, err := h.Menu.ListCategories(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load categories"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": cats})
}

// ListDishes handles GET /v1/menu/dishes with an optional ?category=ID
// filter.
func (h *MenuHandler) ListDishes(c echo.Context) error {
    ctx := c.Request().Context()
    if raw := c.QueryParam("category"); raw != "" {
        catID, err := strconv.ParseUint(raw, 10, 64)
        if err != nil || catID == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
        }
        dishes, err := h.Menu.ListDishesByCategory(ctx, catID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load dishes"})
        }
        return c.JSON(http.StatusOK, echo.Map{"items": dishes})
    }
    dishes, err := h.Menu.ListDishes(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load dishes"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": dishes})
}

type categoryReq struct {
    Title string `json:"title"`
}

// CreateCategory handles POST /v1/admin/menu/categories.
func (h *MenuHandler) CreateCategory(c echo.Context) error {
    var req categoryReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
    }
    id, err := h.Menu.CreateCategory(c.Request().Context(), strings.TrimSpace(req.Title))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create category"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id, "title": strings.TrimSpace(req.Title)})
}

// UpdateCategory handles PUT /v1/admin/menu/categories/:id.
func (h *MenuHandler) UpdateCategory(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
    }
    var req categoryReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
    }
    if err := h.Menu.UpdateCategory(c.Request().Context(), id, strings.TrimSpace(req.Title)); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update category"})
    }
    return c.NoContent(http.StatusNoContent)
}

// DeleteCategory handles DELETE /v1/admin/menu/categories/:id.  Dishes in
// the category cascade with it.
func (h *MenuHandler) DeleteCategory(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
    }
    if err := h.Menu.DeleteCategory(c.Request().Context(), id); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete category"})
    }
    return c.NoContent(http.StatusNoContent)
}

type dishReq struct {
    CategoryID  uint64  `json:"category_id"`
    Title       string  `json:"title"`
    Description *string `json:"description"`
    Price       string  `json:"price"`
}

// CreateDish handles POST /v1/admin/menu/dishes.
func (h *MenuHandler) CreateDish(c echo.Context) error {
    var req dishReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Title = strings.TrimSpace(req.Title)
    if req.CategoryID == 0 || req.Title == "" || req.Price == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_id, title and price are required"})
    }
    id, err := h.Menu.CreateDish(c.Request().Context(), req.CategoryID, req.Title, req.Description, req.Price)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create dish"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// UpdateDish handles PUT /v1/admin/menu/dishes/:id.
func (h *MenuHandler) UpdateDish(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid dish id"})
    }
    var req dishReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Title = strings.TrimSpace(req.Title)
    if req.CategoryID == 0 || req.Title == "" || req.Price == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "category_id, title and price are required"})
    }
    if err := h.Menu.UpdateDish(c.Request().Context(), id, req.CategoryID, req.Title, req.Description, req.Price); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update dish"})
    }
    return c.NoContent(http.StatusNoContent)
}

// DeleteDish handles DELETE /v1/admin/menu/dishes/:id.
func (h *MenuHandler) DeleteDish(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid dish id"})
    }
    if err := h.Menu.DeleteDish(c.Request().Context(), id); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete dish"})
    }
    return c.NoContent(http.StatusNoContent)
}
