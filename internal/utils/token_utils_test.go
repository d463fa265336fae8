package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-1", RoleAdmin, "secret", time.Hour, "pocket_ledger")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret", "pocket_ledger")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestParseAndValidateJWTRejects(t *testing.T) {
	valid, err := GenerateJWT("user-1", "", "secret", time.Hour, "pocket_ledger")
	require.NoError(t, err)
	expired, err := GenerateJWT("user-1", "", "secret", -time.Minute, "pocket_ledger")
	require.NoError(t, err)
	noSubject, err := GenerateJWT("", "", "secret", time.Hour, "pocket_ledger")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(valid, "other-secret", "pocket_ledger")
	assert.Error(t, err)

	_, err = ParseAndValidateJWT(valid, "secret", "someone-else")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	_, err = ParseAndValidateJWT(expired, "secret", "")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = ParseAndValidateJWT(noSubject, "secret", "")
	assert.Error(t, err)
}
