// Package auth issues and verifies the optional HS256 bearer tokens gating
// the upload endpoint. When no secret is configured the server skips this
// layer entirely.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"httpshare/internal/common"
)

// Claims carries the registered claims plus the uploader identity.
type Claims struct {
	jwt.RegisteredClaims
	Subject string
}

// GenerateToken signs a token for subject with the given validity.
func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Subject: subject,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken parses tokenString and returns the subject it was issued to.
func VerifyToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
