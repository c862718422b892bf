package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name       string `json:"name" validate:"required,max=10"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"omitempty,frphone"`
	PostalCode string `json:"postal_code" validate:"omitempty,postalcode"`
	Energy     string `json:"energy_class" validate:"omitempty,energyclass"`
	Password   string `json:"password" validate:"omitempty,password"`
}

func TestStruct_Valid(t *testing.T) {
	s := sample{
		Name:       "Dupont",
		Email:      "dupont@example.fr",
		Phone:      "+33 4 78 00 00 00",
		PostalCode: "2A004",
		Energy:     "C",
		Password:   "Sûrement-42x",
	}
	assert.Nil(t, Struct(s))
}

func TestStruct_FieldMessages(t *testing.T) {
	fields := Struct(sample{
		Name:       "Un nom bien trop long",
		Email:      "nope",
		Phone:      "abc",
		PostalCode: "750",
		Energy:     "H",
		Password:   "short",
	})

	assert.Equal(t, map[string]string{
		"name":         "must be at most 10 characters",
		"email":        "must be a valid email address",
		"phone":        "must be a valid phone number",
		"postal_code":  "must be a valid postal code",
		"energy_class": "must be a letter from A to G",
		"password":     "must be at least 10 characters with a letter, a digit and a special character",
	}, fields)
}

func TestStruct_Required(t *testing.T) {
	fields := Struct(sample{})
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "is required", fields["email"])
	assert.Len(t, fields, 2)
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		pw   string
		want error
	}{
		{"Abcdef-1234", nil},
		{"a-1", ErrPasswordLength},
		{"abcdefghij-", ErrPasswordWeak},
		{"abcdefghij12", ErrPasswordSpecial},
	}
	for _, tt := range tests {
		t.Run(tt.pw, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.pw))
		})
	}
}
