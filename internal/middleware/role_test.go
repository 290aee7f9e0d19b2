package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func runWithAccessLevel(t *testing.T, mw echo.MiddlewareFunc, level any) (*httptest.ResponseRecorder, bool) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if level != nil {
        c.Set("access_level", level)
    }

    called := false
    h := mw(func(c echo.Context) error {
        called = true
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, h(c))
    return rec, called
}

func TestRequireAccessAllows(t *testing.T) {
    rec, called := runWithAccessLevel(t, RequireAccess("admin"), "admin")
    assert.True(t, called)
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAccessRejectsOtherLevel(t *testing.T) {
    rec, called := runWithAccessLevel(t, RequireAccess("admin"), "user")
    assert.False(t, called)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAccessRejectsMissingLevel(t *testing.T) {
    rec, called := runWithAccessLevel(t, RequireAccess("admin"), nil)
    assert.False(t, called)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAccessMultipleLevels(t *testing.T) {
    rec, called := runWithAccessLevel(t, RequireAccess("admin", "user"), "user")
    assert.True(t, called)
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAccessNonStringLevel(t *testing.T) {
    rec, called := runWithAccessLevel(t, RequireAccess("admin"), 42)
    assert.False(t, called)
    assert.Equal(t, http.StatusForbidden, rec.Code)
}
