package contact

import "time"

// Subjects offered by the public contact form.
var Subjects = []string{"vente", "achat", "succession", "donation", "famille", "entreprise", "estimation", "autre"}

// Input is the public contact form payload. Website is a honeypot field
// left empty by humans.
type Input struct {
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Phone      string `json:"phone" validate:"omitempty,frphone"`
	Subject    string `json:"subject" validate:"required,oneof=vente achat succession donation famille entreprise estimation autre"`
	Message    string `json:"message" validate:"required,min=10,max=5000"`
	PropertyID *uint  `json:"property_id" validate:"omitempty,gt=0"`
	Consent    bool   `json:"consent"`
	Website    string `json:"website"`
}

// Meta carries request context that is stored but never shown publicly.
type Meta struct {
	IPAddress string
	UserAgent string
	Referer   string
}

// LeadEvent is published for the mail-delivery backend.
type LeadEvent struct {
	Type       string    `json:"type"`
	ID         uint      `json:"id"`
	Reference  string    `json:"reference"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	PropertyID *uint     `json:"property_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
