package handler

import (
    "errors"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
)

// getAccountID extracts the authenticated account ID placed in the
// context by the JWT middleware.  JWT numeric claims decode as float64,
// so the helper normalises across the representations a claim may take.
func getAccountID(c echo.Context) (uint64, error) {
    v := c.Get("account_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid account_id in context")
}

// parseDate validates a "YYYY-MM-DD" calendar date and returns the parsed
// day.  Reservations key on the literal date string, so the canonical
// formatted form is returned alongside.
func parseDate(s string) (time.Time, string, error) {
    d, err := time.Parse("2006-01-02", s)
    if err != nil {
        return time.Time{}, "", err
    }
    return d, d.Format("2006-01-02"), nil
}
