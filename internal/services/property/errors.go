package property

import "errors"

var (
	ErrUnknownCategory = errors.New("unknown property category")
	ErrNotFound        = errors.New("property not found")
	ErrImageNotFound   = errors.New("image not found")
	ErrReferenceTaken  = errors.New("property reference already taken")
)
