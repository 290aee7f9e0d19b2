package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// Health responds to GET /healthz with a static payload.  It is wired
// before any auth or rate-limit middleware so probes always succeed while
// the process is alive.
func Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "status": "ok",
        "time":   time.Now().UTC().Format(time.RFC3339),
    })
}
