package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken(42, "owner", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "owner", claims.Role)

	_, err = ParseToken(tok, "other")
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	tok, err := GenerateToken(1, "customer", "s3cret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(tok, "s3cret")
	assert.Error(t, err)
}
