package contact

import "errors"

var (
	ErrConsentRequired = errors.New("consent is required")
	ErrNotFound        = errors.New("contact request not found")
)
