package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewAccessTokenClaims(t *testing.T) {
    at, err := NewAccessToken("test-secret", 42, "admin", 15)
    require.NoError(t, err)
    require.NotEmpty(t, at.Token)
    assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

    tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("test-secret"), nil
    })
    require.NoError(t, err)
    require.True(t, tok.Valid)

    claims, ok := tok.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.Equal(t, float64(42), claims["sub"])
    assert.Equal(t, "admin", claims["access_level"])
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
    at, err := NewAccessToken("right-secret", 1, "user", 15)
    require.NoError(t, err)

    _, err = jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("wrong-secret"), nil
    })
    assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
    a, err := NewRefreshToken(30)
    require.NoError(t, err)
    b, err := NewRefreshToken(30)
    require.NoError(t, err)

    assert.Len(t, a.Raw, 96) // 48 random bytes hex encoded
    assert.NotEqual(t, a.Raw, b.Raw)
    assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), a.Exp, 5*time.Second)
}

func TestHashRefreshRaw(t *testing.T) {
    h1 := HashRefreshRaw("token-a")
    h2 := HashRefreshRaw("token-a")
    h3 := HashRefreshRaw("token-b")

    assert.Equal(t, h1, h2)
    assert.NotEqual(t, h1, h3)
    assert.Len(t, h1, 64) // sha256 hex
    assert.NotContains(t, h1, "token-a")
}
