package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenVerifies(t *testing.T) {
	tok, err := NewAccessToken("secret", "user-1", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, time.Minute)

	parsed, err := jwt.ParseWithClaims(tok.Token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	sub, err := parsed.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestNewAccessTokenRejectsEmptyInput(t *testing.T) {
	_, err := NewAccessToken("", "u", time.Hour)
	assert.Error(t, err)
	_, err = NewAccessToken("s", "", time.Hour)
	assert.Error(t, err)
}
