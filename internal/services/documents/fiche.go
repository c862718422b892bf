package documents

import (
	"strings"
	"time"

	"etude/internal/validation"
)

// Marital situations.
const (
	Single   = "celibataire"
	Married  = "marie"
	Pacsed   = "pacse"
	Divorced = "divorce"
	Widowed  = "veuf"
)

var maritalLabels = map[string]string{
	Single:   "Célibataire",
	Married:  "Marié(e)",
	Pacsed:   "Pacsé(e)",
	Divorced: "Divorcé(e)",
	Widowed:  "Veuf / veuve",
}

var regimeLabels = map[string]string{
	"communaute-reduite-acquets": "Communauté réduite aux acquêts",
	"separation-biens":           "Séparation de biens",
	"participation-acquets":      "Participation aux acquêts",
	"communaute-universelle":     "Communauté universelle",
	"indivision":                 "Indivision (PACS)",
}

// Person is the civil identity block shared by the client and the spouse.
type Person struct {
	Civility    string `json:"civility" validate:"required,oneof=M Mme"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	BirthName   string `json:"birth_name" validate:"max=100"`
	FirstNames  string `json:"first_names" validate:"required,max=200"`
	BirthDate   string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	BirthPlace  string `json:"birth_place" validate:"required,max=120"`
	Nationality string `json:"nationality" validate:"max=60"`
	Profession  string `json:"profession" validate:"max=120"`
}

// FicheInput is the "fiche de renseignements" a client fills in before
// the first appointment.
type FicheInput struct {
	Client     Person `json:"client"`
	Address    string `json:"address" validate:"required,max=200"`
	PostalCode string `json:"postal_code" validate:"required,postalcode"`
	City       string `json:"city" validate:"required,max=120"`
	Phone      string `json:"phone" validate:"omitempty,frphone"`
	Email      string `json:"email" validate:"omitempty,email"`

	MaritalStatus string  `json:"marital_status" validate:"required,oneof=celibataire marie pacse divorce veuf"`
	Spouse        *Person `json:"spouse" validate:"-"`
	UnionDate     string  `json:"union_date" validate:"omitempty,datetime=2006-01-02"`
	UnionPlace    string  `json:"union_place" validate:"max=120"`
	Regime        string  `json:"regime" validate:"omitempty,oneof=communaute-reduite-acquets separation-biens participation-acquets communaute-universelle indivision"`

	Matter string `json:"matter" validate:"max=200"`
	Notes  string `json:"notes" validate:"max=2000"`
}

func (in FicheInput) inUnion() bool {
	return in.MaritalStatus == Married || in.MaritalStatus == Pacsed
}

// Validate returns field messages keyed by JSON path, or nil. A married
// or pacsed client must describe the spouse.
func (in FicheInput) Validate() map[string]string {
	fields := validation.Struct(in)
	if in.inUnion() {
		if in.Spouse == nil {
			if fields == nil {
				fields = map[string]string{}
			}
			fields["spouse"] = "is required"
		} else if spouse := validation.Struct(*in.Spouse); spouse != nil {
			if fields == nil {
				fields = map[string]string{}
			}
			for k, v := range spouse {
				fields["spouse."+k] = v
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (p Person) fullName() string {
	name := strings.TrimSpace(p.Civility + " " + strings.ToUpper(p.LastName) + " " + p.FirstNames)
	if p.BirthName != "" && !strings.EqualFold(p.BirthName, p.LastName) {
		name += " née " + strings.ToUpper(p.BirthName)
	}
	return name
}

func frenchDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}
