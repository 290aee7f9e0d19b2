package router

import (
    "net/http"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"

    "github.com/quai-antique/restaurant-reservation/internal/config"
    "github.com/quai-antique/restaurant-reservation/internal/handler"
    "github.com/quai-antique/restaurant-reservation/internal/repository"
)

func registerAll(t *testing.T) *echo.Echo {
    t.Helper()
    e := echo.New()

    resH := handler.NewReservationHandler(
        repository.NewReservationRepo(nil),
        repository.NewServiceRepo(nil),
        repository.NewSettingsRepo(nil),
        repository.NewProfileRepo(nil),
    )
    setH := handler.NewSettingsHandler(repository.NewSettingsRepo(nil), repository.NewServiceRepo(nil))
    menuH := handler.NewMenuHandler(repository.NewMenuRepo(nil))
    galH := handler.NewGalleryHandler(repository.NewGalleryRepo(nil))
    authH := handler.NewAuthHandler(config.Config{JWTSecret: "s"},
        repository.NewAccountRepo(nil), repository.NewProfileRepo(nil), repository.NewTokenRepo(nil))

    passThrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

    RegisterRoutes(e)
    RegisterAuth(e, authH, "s")
    RegisterPublic(e, resH, setH, menuH, galH, passThrough)
    RegisterReservations(e, resH, "s")
    RegisterAdmin(e, resH, setH, menuH, galH, "s")
    return e
}

func TestReservationRoutePaths(t *testing.T) {
    e := registerAll(t)

    registered := make(map[string]bool)
    for _, r := range e.Routes() {
        registered[r.Method+" "+r.Path] = true
    }

    // The booking surface hangs off the /v1/reservations base; the
    // availability and admin segments are static siblings of the guest
    // ":id" routes.
    want := []string{
        http.MethodGet + " /v1/reservations/availability",
        http.MethodPost + " /v1/reservations",
        http.MethodGet + " /v1/reservations/my-reservations",
        http.MethodPut + " /v1/reservations/:id",
        http.MethodDelete + " /v1/reservations/:id",
        http.MethodGet + " /v1/reservations/admin/all",
        http.MethodPut + " /v1/reservations/admin/:id",
        http.MethodDelete + " /v1/reservations/admin/:id",
        http.MethodGet + " /healthz",
        http.MethodPost + " /v1/auth/register",
        http.MethodPost + " /v1/auth/login",
        http.MethodGet + " /v1/settings",
    }
    for _, w := range want {
        assert.True(t, registered[w], "missing route %s", w)
    }
}

func TestStaticSegmentsWinOverParam(t *testing.T) {
    e := registerAll(t)

    // Echo resolves static segments before ":id"; these lookups must not
    // fall through to the guest parameter routes.
    for _, target := range []string{
        "/v1/reservations/availability",
        "/v1/reservations/my-reservations",
        "/v1/reservations/admin/all",
    } {
        c := e.NewContext(nil, nil)
        e.Router().Find(http.MethodGet, target, c)
        assert.Equal(t, target, c.Path(), "route for %s", target)
    }
}
