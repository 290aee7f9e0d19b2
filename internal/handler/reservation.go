package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/quai-antique/restaurant-reservation/internal/availability"
    "github.com/quai-antique/restaurant-reservation/internal/model"
    "github.com/quai-antique/restaurant-reservation/internal/queue"
    "github.com/quai-antique/restaurant-reservation/internal/repository"
    queue_publisher "github.com/quai-antique/restaurant-reservation/internal/service"
)

// ReservationHandler groups the repositories behind availability lookups
// and the guest booking lifecycle.  Methods that change the book run the
// capacity check and the write inside one serializable transaction; the
// committed total is re-read under lock so two parties can never
// oversubscribe a slot by racing each other.
type ReservationHandler struct {
    Reservations *repository.ReservationRepo
    Services     *repository.ServiceRepo
    Settings     *repository.SettingsRepo
    Profiles     *repository.ProfileRepo
}

// NewReservationHandler constructs a ReservationHandler.  All
// dependencies must be non-nil.
func NewReservationHandler(r *repository.ReservationRepo, s *repository.ServiceRepo, st *repository.SettingsRepo, p *repository.ProfileRepo) *ReservationHandler {
    if r == nil || s == nil || st == nil || p == nil {
        panic("nil repository passed to NewReservationHandler")
    }
    return &ReservationHandler{Reservations: r, Services: s, Settings: st, Profiles: p}
}

type reservationReq struct {
    Date      string  `json:"date"`
    Time      string  `json:"time"`
    PartySize int     `json:"partySize"`
    ServiceID uint64  `json:"serviceId"`
    Allergies *string `json:"allergies"`
}

// GetAvailability handles GET /v1/reservations/availability.  Query
// parameters: date (required, YYYY-MM-DD), partySize (required,
// positive), and serviceType (optional service name filter).  For every
// service running on the requested date's weekday it expands the window
// into slots and reports, per slot, the committed total and whether the
// party fits.  The response is a snapshot: nothing is reserved by
// calling this.
func (h *ReservationHandler) GetAvailability(c echo.Context) error {
    day, date, err := parseDate(c.QueryParam("date"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required (YYYY-MM-DD)"})
    }
    partySize, err := strconv.Atoi(c.QueryParam("partySize"))
    if err != nil || partySize <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "partySize is required and must be positive"})
    }
    serviceName := c.QueryParam("serviceType")

    ctx := c.Request().Context()
    services, err := h.Services.ListForDay(ctx, uint8(day.Weekday()), serviceName)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load services"})
    }
    settings, err := h.Settings.Get(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load settings"})
    }

    out := make([]availability.ServiceAvailability, 0, len(services))
    for _, svc := range services {
        committed, err := h.Reservations.CommittedByTime(ctx, date, svc.ID)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
        }
        sa, err := availability.ForService(svc, committed, settings.MaxCapacity, partySize)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "invalid service window"})
        }
        out = append(out, sa)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":      date,
        "partySize": partySize,
        "services":  out,
    })
}

// validateSlot checks that the requested time is one of the bookable slot
// labels of the service and that the service runs on the requested date's
// weekday.  Returns a client-facing message when the request is invalid.
func validateSlot(svc model.Service, day time.Time, timeOfDay string) string {
    if uint8(day.Weekday()) != svc.DayOfWeek {
        return "service does not run on this date"
    }
    labels, err := availability.GenerateSlots(svc.StartTime, svc.EndTime)
    if err != nil {
        return "invalid service window"
    }
    for _, t := range labels {
        if t == timeOfDay {
            return ""
        }
    }
    return "time is not a bookable slot for this service"
}

// Create handles POST /v1/reservations.  It validates the request, then
// inside one serializable transaction: ensures the guest profile exists,
// reads the capacity ceiling, re-reads the committed total for the slot
// under lock, and inserts only if the party still fits.  A party that no
// longer fits gets 409.
func (h *ReservationHandler) Create(c echo.Context) error {
    accountID, err := getAccountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
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
    if _, err := availability.ParseClock(req.Time); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time (HH:MM)"})
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

    profileID, err := h.Profiles.EnsureTx(ctx, tx, accountID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve profile"})
    }
    maxCapacity, err := h.Settings.MaxCapacityTx(ctx, tx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load capacity"})
    }
    booked, err := h.Reservations.SumCommittedTx(ctx, tx, date, req.Time, svc.ID, 0)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check capacity"})
    }
    if !availability.Fits(booked, req.PartySize, maxCapacity) {
        return c.JSON(http.StatusConflict, echo.Map{
            "error":     "not enough seats available for this time slot",
            "remaining": availability.Remaining(booked, maxCapacity),
        })
    }

    res := &model.Reservation{
        UserID:          profileID,
        ServiceID:       svc.ID,
        ReservationDate: date,
        ReservationTime: req.Time,
        NumberOfPeople:  req.PartySize,
        Allergies:       req.Allergies,
    }
    if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    // Best effort: downstream consumers log and notify; booking already succeeded.
    go func() {
        pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = queue_publisher.PublishReservationConfirmed(pubCtx, queue.ReservationConfirmedEvent{
            ReservationID: res.ID,
            AccountID:     accountID,
            Service:       svc.Name,
            Date:          date,
            Time:          req.Time,
            PartySize:     req.PartySize,
            ConfirmedAt:   res.CreatedAt.UTC().Format(time.RFC3339),
        })
    }()

    return c.JSON(http.StatusCreated, echo.Map{
        "id":                res.ID,
        "service_id":        res.ServiceID,
        "reservation_date":  res.ReservationDate,
        "reservation_time":  res.ReservationTime,
        "number_of_people":  res.NumberOfPeople,
        "allergies":         res.Allergies,
        "created_at":        res.CreatedAt.UTC().Format(time.RFC3339),
    })
}

// applyReservationReq overwrites every mutable field of a reservation
// from an update request.  Allergies is replaced even when the request
// omits it: resubmitting the form without the note clears it.
func applyReservationReq(res *model.Reservation, req reservationReq, serviceID uint64, date string) {
    res.ReservationDate = date
    res.ReservationTime = req.Time
    res.ServiceID = serviceID
    res.NumberOfPeople = req.PartySize
    res.Allergies = req.Allergies
}

// List handles GET /v1/reservations/my-reservations.  An account that never acquired a
// profile has no reservations, so it gets an empty array rather than an
// error.
func (h *ReservationHandler) List(c echo.Context) error {
    accountID, err := getAccountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx := c.Request().Context()
    u, err := h.Profiles.GetByAccount(ctx, accountID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusOK, echo.Map{"items": []repository.ReservationDetail{}})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load profile"})
    }
    details, err := h.Reservations.ListByProfile(ctx, u.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// Update handles PUT /v1/reservations/:id.  Ownership is checked first;
// then the committed total for the target slot is re-read under lock with
// the reservation's own seats excluded, so shrinking or moving a booking
// never competes against itself.
func (h *ReservationHandler) Update(c echo.Context) error {
    accountID, err := getAccountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
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
    profileID, err := h.Profiles.EnsureTx(ctx, tx, accountID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve profile"})
    }
    if existing.UserID != profileID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
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

// Delete handles DELETE /v1/reservations/:id.  Cancelling only frees
// seats, so no capacity check runs; ownership is still enforced.
func (h *ReservationHandler) Delete(c echo.Context) error {
    accountID, err := getAccountID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
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

    existing, err := h.Reservations.GetByIDTx(ctx, tx, resID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
    }
    profileID, err := h.Profiles.EnsureTx(ctx, tx, accountID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve profile"})
    }
    if existing.UserID != profileID {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
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
