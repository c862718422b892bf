// Package validation wraps go-playground/validator with the tags and
// messages used by request DTOs.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex      = regexp.MustCompile(`^\+?[0-9 .-]{10,20}$`)
	postalCodeRegex = regexp.MustCompile(`^(?:[0-9]{5}|2[AB][0-9]{3})$`)
	energyRegex     = regexp.MustCompile(`^[A-G]$`)
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("frphone", func(fl validator.FieldLevel) bool {
			return phoneRegex.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("postalcode", func(fl validator.FieldLevel) bool {
			return postalCodeRegex.MatchString(strings.ToUpper(fl.Field().String()))
		})
		_ = v.RegisterValidation("energyclass", func(fl validator.FieldLevel) bool {
			return energyRegex.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return CheckPassword(fl.Field().String()) == nil
		})
		instance = v
	})
	return instance
}

// Struct validates s and returns field messages keyed by JSON name, or
// nil when s is valid.
func Struct(s interface{}) map[string]string {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = message(fe)
	}
	return fields
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "eq":
		return "must be " + fe.Param()
	case "frphone":
		return "must be a valid phone number"
	case "postalcode":
		return "must be a valid postal code"
	case "energyclass":
		return "must be a letter from A to G"
	case "password":
		return "must be at least 10 characters with a letter, a digit and a special character"
	default:
		return "is invalid"
	}
}
