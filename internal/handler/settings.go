package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/quai-antique/restaurant-reservation/internal/availability"
    "github.com/quai-antique/restaurant-reservation/internal/repository"
)

// SettingsHandler serves the public restaurant settings view and the
// admin operations that reshape it: changing the seating ceiling and
// moving service windows.
type SettingsHandler struct {
    Settings *repository.SettingsRepo
    Services *repository.ServiceRepo
}

func NewSettingsHandler(st *repository.SettingsRepo, sv *repository.ServiceRepo) *SettingsHandler {
    return &SettingsHandler{Settings: st, Services: sv}
}

// Get handles GET /v1/settings.  Public: the booking page needs the
// ceiling and the service catalog before the guest logs in.
func (h *SettingsHandler) Get(c echo.Context) error {
    ctx := c.Request().Context()
    settings, err := h.Settings.Get(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load settings"})
    }
    services, err := h.Services.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load services"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "max_capacity": settings.MaxCapacity,
        "services":     services,
    })
}

// ListServices handles GET /v1/settings/services.
func (h *SettingsHandler) ListServices(c echo.Context) error {
    services, err := h.Services.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load services"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": services})
}

// UpdateCapacity handles PUT /v1/admin/settings/capacity.  Shrinking the
// ceiling does not cancel existing reservations; slots already above the
// new ceiling simply stop accepting bookings.
func (h *SettingsHandler) UpdateCapacity(c echo.Context) error {
    var req struct {
        MaxCapacity int `json:"max_capacity"`
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.MaxCapacity <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "max_capacity must be positive"})
    }
    if err := h.Settings.UpdateCapacity(c.Request().Context(), req.MaxCapacity); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update capacity"})
    }
    return c.JSON(http.StatusOK, echo.Map{"max_capacity": req.MaxCapacity})
}

// UpdateServiceWindow handles PUT /v1/admin/settings/services/:id.  Both
// times must be valid "HH:MM" labels with start not after end; existing
// reservations outside the new window are left in place.
func (h *SettingsHandler) UpdateServiceWindow(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
    }
    var req struct {
        StartTime string `json:"start_time"`
        EndTime   string `json:"end_time"`
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    start, err := availability.ParseClock(req.StartTime)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time (HH:MM)"})
    }
    end, err := availability.ParseClock(req.EndTime)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time (HH:MM)"})
    }
    if start > end {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time must not be after end_time"})
    }

    ctx := c.Request().Context()
    if _, err := h.Services.GetByID(ctx, id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load service"})
    }
    if err := h.Services.UpdateWindow(ctx, id, req.StartTime, req.EndTime); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update service"})
    }
    svc, err := h.Services.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load service"})
    }
    return c.JSON(http.StatusOK, svc)
}
