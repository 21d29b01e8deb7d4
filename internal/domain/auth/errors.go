package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidToken     = errors.New("invalid or missing token")
	ErrTokenExpired     = errors.New("token expired")
	ErrMissingClaims    = errors.New("required claims missing from token")
	ErrEmployeeRequired = errors.New("no employee record linked to this account")
)
