package models

import "time"

const (
	ContactStatusNew     = "new"
	ContactStatusHandled = "handled"
)

// ContactRequest is a message left through the public contact form.
type ContactRequest struct {
	ID         uint       `gorm:"primarykey" json:"id"`
	Reference  string     `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	Name       string     `gorm:"not null" json:"name"`
	Email      string     `gorm:"index;not null" json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Subject    string     `gorm:"index;not null" json:"subject"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	PropertyID *uint      `gorm:"index" json:"property_id,omitempty"`
	Consent    bool       `gorm:"not null" json:"consent"`
	Status     string     `gorm:"index;default:'new'" json:"status"`
	HandledAt  *time.Time `json:"handled_at,omitempty"`
	HandledBy  *uint      `json:"handled_by,omitempty"`
	IPAddress  string     `json:"-"`
	Metadata   JSON       `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
