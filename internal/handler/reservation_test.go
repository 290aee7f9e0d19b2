package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/quai-antique/restaurant-reservation/internal/model"
    "github.com/quai-antique/restaurant-reservation/internal/repository"
)

func newTestReservationHandler() *ReservationHandler {
    // Repositories carry no live database; these tests only exercise the
    // request validation paths that return before any query runs.
    return NewReservationHandler(
        repository.NewReservationRepo(nil),
        repository.NewServiceRepo(nil),
        repository.NewSettingsRepo(nil),
        repository.NewProfileRepo(nil),
    )
}

func bookingContext(method, target, body string, accountID any) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    var req *http.Request
    if body != "" {
        req = httptest.NewRequest(method, target, strings.NewReader(body))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    } else {
        req = httptest.NewRequest(method, target, nil)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if accountID != nil {
        c.Set("account_id", accountID)
    }
    return c, rec
}

func TestGetAvailabilityValidation(t *testing.T) {
    h := newTestReservationHandler()
    cases := []struct {
        name   string
        target string
    }{
        {name: "missing date", target: "/v1/reservations/availability?partySize=4"},
        {name: "malformed date", target: "/v1/reservations/availability?date=01-09-2026&partySize=4"},
        {name: "missing partySize", target: "/v1/reservations/availability?date=2026-09-01"},
        {name: "zero partySize", target: "/v1/reservations/availability?date=2026-09-01&partySize=0"},
        {name: "negative partySize", target: "/v1/reservations/availability?date=2026-09-01&partySize=-2"},
        {name: "non-numeric partySize", target: "/v1/reservations/availability?date=2026-09-01&partySize=many"},
    }
    for _, tc := range cases {
        c, rec := bookingContext(http.MethodGet, tc.target, "", nil)
        require.NoError(t, h.GetAvailability(c), tc.name)
        assert.Equal(t, http.StatusBadRequest, rec.Code, tc.name)
    }
}

func TestCreateValidation(t *testing.T) {
    h := newTestReservationHandler()
    cases := []struct {
        name string
        body string
        want int
    }{
        {name: "missing date", body: `{"time":"19:00","partySize":4,"serviceId":1}`, want: http.StatusBadRequest},
        {name: "missing time", body: `{"date":"2026-09-01","partySize":4,"serviceId":1}`, want: http.StatusBadRequest},
        {name: "missing partySize", body: `{"date":"2026-09-01","time":"19:00","serviceId":1}`, want: http.StatusBadRequest},
        {name: "missing serviceId", body: `{"date":"2026-09-01","time":"19:00","partySize":4}`, want: http.StatusBadRequest},
        {name: "negative partySize", body: `{"date":"2026-09-01","time":"19:00","partySize":-4,"serviceId":1}`, want: http.StatusBadRequest},
        {name: "malformed date", body: `{"date":"tomorrow","time":"19:00","partySize":4,"serviceId":1}`, want: http.StatusBadRequest},
        {name: "malformed time", body: `{"date":"2026-09-01","time":"7pm","partySize":4,"serviceId":1}`, want: http.StatusBadRequest},
        {name: "invalid json", body: `{"date":`, want: http.StatusBadRequest},
    }
    for _, tc := range cases {
        c, rec := bookingContext(http.MethodPost, "/v1/reservations", tc.body, float64(7))
        require.NoError(t, h.Create(c), tc.name)
        assert.Equal(t, tc.want, rec.Code, tc.name)
    }
}

func TestCreateRequiresIdentity(t *testing.T) {
    h := newTestReservationHandler()
    c, rec := bookingContext(http.MethodPost, "/v1/reservations",
        `{"date":"2026-09-01","time":"19:00","partySize":4,"serviceId":1}`, nil)
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApplyReservationReqOverwritesAllergies(t *testing.T) {
    note := "shellfish"
    existing := model.Reservation{
        ID:              5,
        UserID:          9,
        ServiceID:       1,
        ReservationDate: "2026-09-01",
        ReservationTime: "19:00",
        NumberOfPeople:  4,
        Allergies:       &note,
    }

    // Resubmitting without the note clears it; no stale allergy data
    // survives an edit.
    applyReservationReq(&existing, reservationReq{
        Date: "2026-09-08", Time: "19:30", PartySize: 2, ServiceID: 2,
    }, 2, "2026-09-08")
    assert.Nil(t, existing.Allergies)
    assert.Equal(t, "2026-09-08", existing.ReservationDate)
    assert.Equal(t, "19:30", existing.ReservationTime)
    assert.Equal(t, uint64(2), existing.ServiceID)
    assert.Equal(t, 2, existing.NumberOfPeople)
    assert.Equal(t, uint64(9), existing.UserID, "ownership never changes on edit")

    newNote := "peanuts"
    applyReservationReq(&existing, reservationReq{
        Date: "2026-09-08", Time: "19:30", PartySize: 2, ServiceID: 2, Allergies: &newNote,
    }, 2, "2026-09-08")
    require.NotNil(t, existing.Allergies)
    assert.Equal(t, "peanuts", *existing.Allergies)
}
