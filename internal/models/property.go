package models

import (
	"time"

	"gorm.io/gorm"
)

// PropertyCategory is the closed set of listing kinds. The fields a
// listing carries depend on its category.
type PropertyCategory string

const (
	CategoryApartment  PropertyCategory = "appartement"
	CategoryHouse      PropertyCategory = "maison"
	CategoryLand       PropertyCategory = "terrain"
	CategoryCommercial PropertyCategory = "local-commercial"
	CategoryBuilding   PropertyCategory = "immeuble"
	CategoryParking    PropertyCategory = "parking"
)

// Property is a listing in the office catalogue.
type Property struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	Reference   string           `gorm:"uniqueIndex;size:32;not null" json:"reference"`
	Title       string           `gorm:"not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Category    PropertyCategory `gorm:"index;not null" json:"category"`
	Price       float64          `gorm:"not null" json:"price"`
	City        string           `gorm:"index" json:"city"`
	PostalCode  string           `gorm:"size:5" json:"postal_code"`
	IsNewBuild  bool             `gorm:"default:false" json:"is_new_build"`

	LivingArea       *float64 `json:"living_area,omitempty"`
	LandArea         *float64 `json:"land_area,omitempty"`
	Rooms            *int     `json:"rooms,omitempty"`
	Bedrooms         *int     `json:"bedrooms,omitempty"`
	Bathrooms        *int     `json:"bathrooms,omitempty"`
	Floor            *int     `json:"floor,omitempty"`
	TotalFloors      *int     `json:"total_floors,omitempty"`
	Units            *int     `json:"units,omitempty"`
	ParkingSpaces    *int     `json:"parking_spaces,omitempty"`
	ConstructionYear *int     `json:"construction_year,omitempty"`
	EnergyClass      string   `gorm:"size:1" json:"energy_class,omitempty"`
	GHGClass         string   `gorm:"size:1" json:"ghg_class,omitempty"`

	Features StringList `gorm:"type:text" json:"features"`

	Published   bool       `gorm:"index;default:false" json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	Images []PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"images"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type PropertyImage struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	PropertyID  uint      `gorm:"index;not null" json:"property_id"`
	Path        string    `gorm:"not null" json:"-"`
	URL         string    `gorm:"not null" json:"url"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Position    int       `gorm:"default:0" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}
