package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/quai-antique/restaurant-reservation/internal/utils"
)

const testSecret = "unit-test-secret"

func runWithAuth(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    called := false
    h := mw(func(c echo.Context) error {
        called = true
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, h(c))
    return rec, c, called
}

func TestJWTAuthValidToken(t *testing.T) {
    at, err := utils.NewAccessToken(testSecret, 7, "user", 15)
    require.NoError(t, err)

    rec, c, called := runWithAuth(t, JWTAuth(testSecret), "Bearer "+at.Token)
    assert.True(t, called)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, float64(7), c.Get("account_id"))
    assert.Equal(t, "user", c.Get("access_level"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
    rec, _, called := runWithAuth(t, JWTAuth(testSecret), "")
    assert.False(t, called)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
    at, err := utils.NewAccessToken("other-secret", 7, "user", 15)
    require.NoError(t, err)

    rec, _, called := runWithAuth(t, JWTAuth(testSecret), "Bearer "+at.Token)
    assert.False(t, called)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
    rec, _, called := runWithAuth(t, JWTAuth(testSecret), "Bearer not.a.jwt")
    assert.False(t, called)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthOptionalWithoutToken(t *testing.T) {
    rec, c, called := runWithAuth(t, JWTAuthOptional(testSecret), "")
    assert.True(t, called)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Nil(t, c.Get("account_id"))
}

func TestJWTAuthOptionalWithToken(t *testing.T) {
    at, err := utils.NewAccessToken(testSecret, 9, "admin", 15)
    require.NoError(t, err)

    _, c, called := runWithAuth(t, JWTAuthOptional(testSecret), "Bearer "+at.Token)
    assert.True(t, called)
    assert.Equal(t, float64(9), c.Get("account_id"))
    assert.Equal(t, "admin", c.Get("access_level"))
}

func TestJWTAuthOptionalInvalidTokenPassesAnonymously(t *testing.T) {
    _, c, called := runWithAuth(t, JWTAuthOptional(testSecret), "Bearer broken")
    assert.True(t, called)
    assert.Nil(t, c.Get("account_id"))
}
