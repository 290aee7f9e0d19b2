package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
    hash, err := HashPassword("s3cret-dinner", 4)
    require.NoError(t, err)
    assert.NotEqual(t, "s3cret-dinner", hash)

    assert.True(t, VerifyPassword(hash, "s3cret-dinner"))
    assert.False(t, VerifyPassword(hash, "wrong"))
    assert.False(t, VerifyPassword("not-a-bcrypt-hash", "s3cret-dinner"))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
    a, err := HashPassword("same-input", 4)
    require.NoError(t, err)
    b, err := HashPassword("same-input", 4)
    require.NoError(t, err)
    assert.NotEqual(t, a, b)
}
