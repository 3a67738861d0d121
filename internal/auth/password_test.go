package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	h1, err := HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", h1)
	assert.NotEqual(t, h1, h2, "per-hash salt")
	assert.True(t, ComparePassword(h1, "hunter22"))
	assert.False(t, ComparePassword(h1, "hunter23"))
}
