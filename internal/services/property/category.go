package property

import (
	"strings"

	"etude/internal/models"
)

// Field names a category dependent attribute of a listing. Values match
// the JSON names of models.Property.
type Field string

const (
	FieldLivingArea       Field = "living_area"
	FieldLandArea         Field = "land_area"
	FieldRooms            Field = "rooms"
	FieldBedrooms         Field = "bedrooms"
	FieldBathrooms        Field = "bathrooms"
	FieldFloor            Field = "floor"
	FieldTotalFloors      Field = "total_floors"
	FieldUnits            Field = "units"
	FieldParkingSpaces    Field = "parking_spaces"
	FieldConstructionYear Field = "construction_year"
	FieldEnergyClass      Field = "energy_class"
	FieldGHGClass         Field = "ghg_class"
)

// CategoryConfig lists which fields a category shows and which feature
// tags it accepts.
type CategoryConfig struct {
	Category models.PropertyCategory `json:"category"`
	Label    string                  `json:"label"`
	Fields   []Field                 `json:"fields"`
	Features []string                `json:"features"`
}

var diagnostics = []Field{FieldConstructionYear, FieldEnergyClass, FieldGHGClass}

var categories = []CategoryConfig{
	{
		Category: models.CategoryApartment,
		Label:    "Appartement",
		Fields: append([]Field{
			FieldLivingArea, FieldRooms, FieldBedrooms, FieldBathrooms,
			FieldFloor, FieldTotalFloors, FieldParkingSpaces,
		}, diagnostics...),
		Features: []string{"balcon", "terrasse", "ascenseur", "cave", "gardien", "interphone", "climatisation", "meuble"},
	},
	{
		Category: models.CategoryHouse,
		Label:    "Maison",
		Fields: append([]Field{
			FieldLivingArea, FieldLandArea, FieldRooms, FieldBedrooms,
			FieldBathrooms, FieldTotalFloors, FieldParkingSpaces,
		}, diagnostics...),
		Features: []string{"jardin", "piscine", "garage", "terrasse", "cave", "veranda", "cheminee", "climatisation"},
	},
	{
		Category: models.CategoryLand,
		Label:    "Terrain",
		Fields:   []Field{FieldLandArea},
		Features: []string{"viabilise", "constructible", "cloture", "arbore"},
	},
	{
		Category: models.CategoryCommercial,
		Label:    "Local commercial",
		Fields: append([]Field{
			FieldLivingArea, FieldFloor, FieldParkingSpaces,
		}, diagnostics...),
		Features: []string{"vitrine", "climatisation", "acces-pmr", "reserve", "extraction"},
	},
	{
		Category: models.CategoryBuilding,
		Label:    "Immeuble",
		Fields: append([]Field{
			FieldLivingArea, FieldLandArea, FieldUnits, FieldTotalFloors, FieldParkingSpaces,
		}, diagnostics...),
		Features: []string{"ascenseur", "cave", "gardien", "local-velos", "cour"},
	},
	{
		Category: models.CategoryParking,
		Label:    "Parking / box",
		Fields:   []Field{FieldFloor},
		Features: []string{"box-ferme", "couvert", "acces-securise", "borne-recharge"},
	},
}

var byCategory = func() map[models.PropertyCategory]CategoryConfig {
	m := make(map[models.PropertyCategory]CategoryConfig, len(categories))
	for _, c := range categories {
		m[c.Category] = c
	}
	return m
}()

// Categories returns every category configuration in display order.
func Categories() []CategoryConfig {
	out := make([]CategoryConfig, len(categories))
	copy(out, categories)
	return out
}

func ConfigFor(cat models.PropertyCategory) (CategoryConfig, bool) {
	c, ok := byCategory[cat]
	return c, ok
}

// ParseCategory accepts a category slug in any case.
func ParseCategory(s string) (models.PropertyCategory, bool) {
	cat := models.PropertyCategory(strings.ToLower(strings.TrimSpace(s)))
	_, ok := byCategory[cat]
	return cat, ok
}

func (c CategoryConfig) Shows(f Field) bool {
	for _, v := range c.Fields {
		if v == f {
			return true
		}
	}
	return false
}

func (c CategoryConfig) Allows(feature string) bool {
	for _, v := range c.Features {
		if v == feature {
			return true
		}
	}
	return false
}

var clearers = map[Field]func(*models.Property){
	FieldLivingArea:       func(p *models.Property) { p.LivingArea = nil },
	FieldLandArea:         func(p *models.Property) { p.LandArea = nil },
	FieldRooms:            func(p *models.Property) { p.Rooms = nil },
	FieldBedrooms:         func(p *models.Property) { p.Bedrooms = nil },
	FieldBathrooms:        func(p *models.Property) { p.Bathrooms = nil },
	FieldFloor:            func(p *models.Property) { p.Floor = nil },
	FieldTotalFloors:      func(p *models.Property) { p.TotalFloors = nil },
	FieldUnits:            func(p *models.Property) { p.Units = nil },
	FieldParkingSpaces:    func(p *models.Property) { p.ParkingSpaces = nil },
	FieldConstructionYear: func(p *models.Property) { p.ConstructionYear = nil },
	FieldEnergyClass:      func(p *models.Property) { p.EnergyClass = "" },
	FieldGHGClass:         func(p *models.Property) { p.GHGClass = "" },
}

// ApplyCategory clears every field the listing's category does not show
// and drops feature tags it does not allow. Duplicate tags are collapsed.
func ApplyCategory(p *models.Property) error {
	cfg, ok := ConfigFor(p.Category)
	if !ok {
		return ErrUnknownCategory
	}

	for field, clear := range clearers {
		if !cfg.Shows(field) {
			clear(p)
		}
	}

	features := models.StringList{}
	for _, f := range p.Features {
		f = strings.ToLower(strings.TrimSpace(f))
		if cfg.Allows(f) && !features.Contains(f) {
			features = append(features, f)
		}
	}
	p.Features = features
	return nil
}
