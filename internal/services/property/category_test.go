package property

import (
	"testing"

	"etude/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestCategories_Complete(t *testing.T) {
	all := []models.PropertyCategory{
		models.CategoryApartment, models.CategoryHouse, models.CategoryLand,
		models.CategoryCommercial, models.CategoryBuilding, models.CategoryParking,
	}
	require.Len(t, Categories(), len(all))
	for _, cat := range all {
		cfg, ok := ConfigFor(cat)
		require.True(t, ok, cat)
		assert.NotEmpty(t, cfg.Label)
		assert.NotEmpty(t, cfg.Fields)
		assert.NotEmpty(t, cfg.Features)
		for _, f := range cfg.Fields {
			_, known := clearers[f]
			assert.True(t, known, "%s shows unknown field %s", cat, f)
		}
	}
}

func TestParseCategory(t *testing.T) {
	cat, ok := ParseCategory(" Maison ")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryHouse, cat)

	_, ok = ParseCategory("chateau")
	assert.False(t, ok)
}

func TestApplyCategory_ClearsHiddenFields(t *testing.T) {
	p := &models.Property{
		Category:         models.CategoryHouse,
		LivingArea:       floatp(120),
		LandArea:         floatp(800),
		Rooms:            intp(5),
		Floor:            intp(2),
		Units:            intp(4),
		ConstructionYear: intp(1975),
		EnergyClass:      "D",
		Features:         models.StringList{"Jardin", "piscine", "ascenseur", "jardin"},
	}
	require.NoError(t, ApplyCategory(p))

	assert.NotNil(t, p.LivingArea)
	assert.NotNil(t, p.LandArea)
	assert.NotNil(t, p.Rooms)
	assert.Nil(t, p.Floor)
	assert.Nil(t, p.Units)
	assert.Equal(t, "D", p.EnergyClass)
	assert.Equal(t, models.StringList{"jardin", "piscine"}, p.Features)
}

func TestApplyCategory_SwitchToLand(t *testing.T) {
	p := &models.Property{
		Category:    models.CategoryLand,
		LivingArea:  floatp(90),
		LandArea:    floatp(1500),
		Bedrooms:    intp(2),
		EnergyClass: "B",
		GHGClass:    "C",
		Features:    models.StringList{"balcon", "viabilise"},
	}
	require.NoError(t, ApplyCategory(p))

	assert.Nil(t, p.LivingArea)
	assert.Nil(t, p.Bedrooms)
	assert.Equal(t, 1500.0, *p.LandArea)
	assert.Empty(t, p.EnergyClass)
	assert.Empty(t, p.GHGClass)
	assert.Equal(t, models.StringList{"viabilise"}, p.Features)
}

func TestApplyCategory_Unknown(t *testing.T) {
	assert.ErrorIs(t, ApplyCategory(&models.Property{Category: "chateau"}), ErrUnknownCategory)
}
