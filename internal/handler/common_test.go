package handler

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/quai-antique/restaurant-reservation/internal/model"
)

func ctxWithAccountID(v any) echo.Context {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    c := e.NewContext(req, httptest.NewRecorder())
    if v != nil {
        c.Set("account_id", v)
    }
    return c
}

func TestGetAccountID(t *testing.T) {
    // JWT claims decode numbers as float64; other representations are
    // accepted too.
    for _, v := range []any{uint64(12), int(12), int64(12), float64(12), "12"} {
        got, err := getAccountID(ctxWithAccountID(v))
        require.NoError(t, err, "value %T", v)
        assert.Equal(t, uint64(12), got, "value %T", v)
    }
}

func TestGetAccountIDInvalid(t *testing.T) {
    _, err := getAccountID(ctxWithAccountID(nil))
    assert.Error(t, err)
    _, err = getAccountID(ctxWithAccountID("not-a-number"))
    assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
    day, date, err := parseDate("2026-09-01")
    require.NoError(t, err)
    assert.Equal(t, "2026-09-01", date)
    assert.Equal(t, time.Tuesday, day.Weekday())

    _, _, err = parseDate("01/09/2026")
    assert.Error(t, err)
    _, _, err = parseDate("")
    assert.Error(t, err)
}

func TestValidateSlot(t *testing.T) {
    svc := model.Service{ID: 1, Name: "dinner", DayOfWeek: 2, StartTime: "19:00", EndTime: "21:30"}
    tuesday, _, err := parseDate("2026-09-01")
    require.NoError(t, err)
    wednesday, _, err := parseDate("2026-09-02")
    require.NoError(t, err)

    assert.Empty(t, validateSlot(svc, tuesday, "19:00"))
    assert.Empty(t, validateSlot(svc, tuesday, "21:30"))
    assert.NotEmpty(t, validateSlot(svc, tuesday, "19:10"), "off-grid time")
    assert.NotEmpty(t, validateSlot(svc, tuesday, "18:45"), "before the window")
    assert.NotEmpty(t, validateSlot(svc, tuesday, "21:45"), "after the window")
    assert.NotEmpty(t, validateSlot(svc, wednesday, "19:00"), "wrong weekday")
}

func TestValidateSlotMisalignedClose(t *testing.T) {
    svc := model.Service{ID: 2, Name: "dinner", DayOfWeek: 2, StartTime: "19:00", EndTime: "21:40"}
    tuesday, _, err := parseDate("2026-09-01")
    require.NoError(t, err)

    assert.Empty(t, validateSlot(svc, tuesday, "21:30"))
    assert.Empty(t, validateSlot(svc, tuesday, "21:40"), "closing time itself is bookable")
    assert.NotEmpty(t, validateSlot(svc, tuesday, "21:45"))
}
