package property

import (
	"strings"

	"etude/internal/models"
	"etude/internal/services/fees"
)

// Input is the admin payload for creating or replacing a listing.
type Input struct {
	Reference   string  `json:"reference" validate:"omitempty,max=32"`
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=10000"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	City        string  `json:"city" validate:"required,max=120"`
	PostalCode  string  `json:"postal_code" validate:"required,postalcode"`
	IsNewBuild  bool    `json:"is_new_build"`

	LivingArea       *float64 `json:"living_area" validate:"omitempty,gt=0"`
	LandArea         *float64 `json:"land_area" validate:"omitempty,gt=0"`
	Rooms            *int     `json:"rooms" validate:"omitempty,gte=0,lte=100"`
	Bedrooms         *int     `json:"bedrooms" validate:"omitempty,gte=0,lte=100"`
	Bathrooms        *int     `json:"bathrooms" validate:"omitempty,gte=0,lte=50"`
	Floor            *int     `json:"floor" validate:"omitempty,gte=-5,lte=200"`
	TotalFloors      *int     `json:"total_floors" validate:"omitempty,gte=0,lte=200"`
	Units            *int     `json:"units" validate:"omitempty,gte=1,lte=1000"`
	ParkingSpaces    *int     `json:"parking_spaces" validate:"omitempty,gte=0,lte=1000"`
	ConstructionYear *int     `json:"construction_year" validate:"omitempty,gte=1000,lte=2100"`
	EnergyClass      string   `json:"energy_class" validate:"omitempty,energyclass"`
	GHGClass         string   `json:"ghg_class" validate:"omitempty,energyclass"`

	Features []string `json:"features" validate:"max=30,dive,max=40"`
}

// apply copies the input onto p, leaving identity, images and publication
// state untouched.
func (in Input) apply(p *models.Property) {
	p.Reference = strings.TrimSpace(in.Reference)
	p.Title = strings.TrimSpace(in.Title)
	p.Description = in.Description
	p.Category = models.PropertyCategory(strings.ToLower(strings.TrimSpace(in.Category)))
	p.Price = in.Price
	p.City = strings.TrimSpace(in.City)
	p.PostalCode = strings.ToUpper(strings.TrimSpace(in.PostalCode))
	p.IsNewBuild = in.IsNewBuild
	p.LivingArea = in.LivingArea
	p.LandArea = in.LandArea
	p.Rooms = in.Rooms
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.Floor = in.Floor
	p.TotalFloors = in.TotalFloors
	p.Units = in.Units
	p.ParkingSpaces = in.ParkingSpaces
	p.ConstructionYear = in.ConstructionYear
	p.EnergyClass = strings.ToUpper(in.EnergyClass)
	p.GHGClass = strings.ToUpper(in.GHGClass)
	p.Features = models.StringList(in.Features)
}

// Filter is the public listing query.
type Filter struct {
	Category string  `query:"category"`
	City     string  `query:"city"`
	MaxPrice float64 `query:"max_price"`
}

// Listing is a published property with its acquisition fee estimate.
type Listing struct {
	models.Property
	FeeEstimate *fees.FeeView `json:"fee_estimate,omitempty"`
}

// Page is one page of listings with the total match count.
type Page struct {
	Items []models.Property `json:"items"`
	Total int64             `json:"total"`
}
