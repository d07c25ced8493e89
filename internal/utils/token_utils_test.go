package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/biz_finance_tracker/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "secret", time.Hour, "bft")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, "secret", "bft")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	good, err := utils.GenerateJWT("user-1", "secret", time.Hour, "bft")
	require.NoError(t, err)
	expired, err := utils.GenerateJWT("user-1", "secret", -time.Minute, "bft")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(good, "other-secret", "bft")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = utils.ParseAndValidateJWT(good, "secret", "someone-else")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)

	_, err = utils.ParseAndValidateJWT(expired, "secret", "")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
