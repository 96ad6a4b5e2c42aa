// Package common defines shared constants and sentinel errors used across
// client and server layers of the document storage app. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors raised before any network or DB call.
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token and grant lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrShareExpired        = errors.New("share link expired")

	// Account lifecycle errors.
	ErrUserNotConfirmed  = errors.New("user not confirmed")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidCode       = errors.New("invalid confirmation code")
)
