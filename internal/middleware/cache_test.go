package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/quai-antique/restaurant-reservation/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{}
    hdr.Set("Content-Type", "application/json")
    body := []byte(`{"items":[]}`)

    encoded, err := encodePayload(http.StatusOK, hdr, body)
    require.NoError(t, err)

    status, gotHdr, gotBody, ok := decodePayload(encoded)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
    assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
    _, _, _, ok := decodePayload([]byte{0, 0, 0})
    assert.False(t, ok)

    // header length pointing past the buffer
    _, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 0, 99, 1, 2})
    assert.False(t, ok)
}

func TestCacheKeyVariesWithQuery(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "qa:cache"}
    e := echo.New()

    key := func(target string) string {
        req := httptest.NewRequest(http.MethodGet, target, nil)
        c := e.NewContext(req, httptest.NewRecorder())
        c.SetPath("/v1/availability")
        return cacheKeyFrom(cfg, c)
    }

    a := key("/v1/availability?date=2026-09-01&partySize=4")
    b := key("/v1/availability?date=2026-09-02&partySize=4")
    c := key("/v1/availability?date=2026-09-01&partySize=4")

    assert.NotEqual(t, a, b)
    assert.Equal(t, a, c)
    assert.Contains(t, a, "qa:cache:")
}

func TestNewRedisCachePassThroughWhenDisabled(t *testing.T) {
    mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    called := false
    h := mw(func(c echo.Context) error {
        called = true
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, h(c))
    assert.True(t, called)
}
