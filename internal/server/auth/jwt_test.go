package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"httpshare/internal/common"
)

func TestGenerateAndVerify(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("uploader-1", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := VerifyToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "uploader-1", subject)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := GenerateToken("uploader-1", []byte("right"), time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, []byte("wrong"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken("uploader-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := VerifyToken("not.a.token", []byte("secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
