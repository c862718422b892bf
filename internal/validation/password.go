package validation

import (
	"errors"
	"regexp"
	"unicode"
)

const (
	MinPasswordLength = 10
	MaxPasswordLength = 72
)

var (
	ErrPasswordLength  = errors.New("password must be between 10 and 72 characters")
	ErrPasswordWeak    = errors.New("password must contain a letter and a digit")
	ErrPasswordSpecial = errors.New("password must contain a special character")
)

var specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>_\-+=\[\]/\;'~]`)

// HasSpecialChar checks if a string contains at least one special character
func HasSpecialChar(s string) bool {
	return specialChars.MatchString(s)
}

// CheckPassword enforces the back-office password policy. The upper bound
// is bcrypt's input limit.
func CheckPassword(pw string) error {
	if len(pw) < MinPasswordLength || len(pw) > MaxPasswordLength {
		return ErrPasswordLength
	}
	var letter, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrPasswordWeak
	}
	if !HasSpecialChar(pw) {
		return ErrPasswordSpecial
	}
	return nil
}
