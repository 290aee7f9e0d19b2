package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/quai-antique/restaurant-reservation/internal/availability"
)

// AdminListReservations handles GET /v1/reservations/admin/all.  It returns
// every reservation joined with guest identity, optionally restricted to
// one dining date via ?date=YYYY-MM-DD.
func (h *ReservationHandler) AdminListReservations(c echo.Context) error {
    date := ""
    if raw := c.QueryParam("date"); raw != "" {
        var err error
        if _, date, err = parseDate(raw); err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date (YYYY-MM-DD)"})
        }
    }
    details, err := h.Reservations.ListAll(c.Request().Context(), date)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// AdminUpdateReservation handles PUT /v1/reservations/admin/:id.  It is
// the guest update without the ownership gate: the capacity invariant
// still applies, because an administrator moving a booking must not
// oversubscribe the target slot either.
func (h *ReservationHandler) AdminUpdateReservation(c echo.Context) error {
    resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || resID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req reservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Date == "" || req.Time == "" || req.PartySize == 0 || req.ServiceID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date, time, partySize and serviceId are required"})
    }
    if req.PartySize < 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "partySize must be positive"})
    }
    day, date, err := parseDate(req.Date)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date (YYYY-MM-DD)"})
    }

    ctx := c.Request().Context()
    svc, err := h.Services.GetByID(ctx, req.ServiceID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load service"})
    }
    if msg := validateSlot(svc, day, req.Time); msg != "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
    }

    tx, err := h.Reservations.DB().BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    existing, err := h.Reservations.GetByIDTx(ctx, tx, resID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
    }
    maxCapacity, err := h.Settings.MaxCapacityTx(ctx, tx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load capacity"})
    }
    booked, err := h.Reservations.SumCommittedTx(ctx, tx, date, req.Time, svc.ID, existing.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check capacity"})
    }
    if !availability.Fits(booked, req.PartySize, maxCapacity) {
        return c.JSON(http.StatusConflict, echo.Map{
            "error":     "not enough seats available for this time slot",
            "remaining": availability.Remaining(booked, maxCapacity),
        })
    }

    applyReservationReq(&existing, req, svc.ID, date)
    if err := h.Reservations.UpdateTx(ctx, tx, &existing); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusOK, echo.Map{
        "id":               existing.ID,
        "service_id":       existing.ServiceID,
        "reservation_date": existing.ReservationDate,
        "reservation_time": existing.ReservationTime,
        "number_of_people": existing.NumberOfPeople,
        "allergies":        existing.Allergies,
    })
}

// AdminDeleteReservation handles DELETE /v1/reservations/admin/:id.
func (h *ReservationHandler) AdminDeleteReservation(c echo.Context) error {
    resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || resID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    ctx := c.Request().Context()
    tx, err := h.Reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if _, err := h.Reservations.GetByIDTx(ctx, tx, resID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
    }
    if err := h.Reservations.DeleteTx(ctx, tx, resID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.NoContent(http.StatusNoContent)
}
