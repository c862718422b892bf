package repositories

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrImageNotFound     = errors.New("image not found")
	ErrReferenceTaken    = errors.New("property reference already taken")
	ErrContactNotFound   = errors.New("contact request not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)
