// Package common defines shared constants and sentinel errors used across
// the client and server layers of httpshare. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	ErrorUnauthorized = errors.New("unauthorized")

	// Upload-specific errors.
	ErrMissingBoundary = errors.New("missing multipart boundary")
	ErrNoFilePart      = errors.New("no file part in request body")
	ErrBadFileName     = errors.New("bad file name")
	ErrUploadTooLarge  = errors.New("upload too large")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
