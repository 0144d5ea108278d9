package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)

	require.True(t, CheckPasswordHash("password123", hash))
	require.False(t, CheckPasswordHash("wrong-password", hash))
}
