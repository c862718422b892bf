package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrTokenVersion       = errors.New("token version mismatch")
	ErrInvalidOldPassword = errors.New("invalid old password")
	ErrTokenGeneration    = errors.New("error generating tokens")
)
