package repositories

import (
	"testing"

	"etude/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProperty(ref string, cat models.PropertyCategory, city string, price float64) *models.Property {
	return &models.Property{
		Reference:  ref,
		Title:      "Bien " + ref,
		Category:   cat,
		City:       city,
		PostalCode: "69003",
		Price:      price,
		Features:   models.StringList{"cave"},
	}
}

func TestPropertyRepository_CRUD(t *testing.T) {
	repo := NewPropertyRepository(newTestDB(t))

	p := newProperty("VT-001", models.CategoryApartment, "Lyon", 250000)
	require.NoError(t, repo.Create(p))
	require.NotZero(t, p.ID)

	assert.ErrorIs(t, repo.Create(newProperty("VT-001", models.CategoryHouse, "Lyon", 1)), ErrReferenceTaken)

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"cave"}, got.Features)
	assert.Empty(t, got.Images)

	got.Price = 240000
	got.Title = "Appartement T3"
	require.NoError(t, repo.Update(got))

	got, err = repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 240000.0, got.Price)
	assert.Equal(t, "Appartement T3", got.Title)

	require.NoError(t, repo.Delete(p.ID))
	_, err = repo.GetByID(p.ID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.ErrorIs(t, repo.Delete(p.ID), ErrPropertyNotFound)
}

func TestPropertyRepository_ListFilters(t *testing.T) {
	repo := NewPropertyRepository(newTestDB(t))

	require.NoError(t, repo.Create(newProperty("A", models.CategoryApartment, "Lyon", 200000)))
	require.NoError(t, repo.Create(newProperty("B", models.CategoryHouse, "Lyon", 450000)))
	require.NoError(t, repo.Create(newProperty("C", models.CategoryHouse, "Villeurbanne", 300000)))
	require.NoError(t, repo.Create(newProperty("D", models.CategoryLand, "Lyon", 90000)))

	for _, id := range []uint{1, 2, 3} {
		_, err := repo.SetPublished(id, true)
		require.NoError(t, err)
	}

	all, total, err := repo.List(PropertyFilter{}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, all, 4)

	published, total, err := repo.List(PropertyFilter{PublishedOnly: true}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, published, 3)

	houses, total, err := repo.List(PropertyFilter{PublishedOnly: true, Category: models.CategoryHouse, City: "lyon"}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "B", houses[0].Reference)

	cheap, total, err := repo.List(PropertyFilter{PublishedOnly: true, MaxPrice: 300000}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, cheap, 2)

	page, total, err := repo.List(PropertyFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, page, 2)
}

func TestPropertyRepository_SetPublishedStampsOnce(t *testing.T) {
	repo := NewPropertyRepository(newTestDB(t))
	p := newProperty("P", models.CategoryParking, "Lyon", 20000)
	require.NoError(t, repo.Create(p))

	got, err := repo.SetPublished(p.ID, true)
	require.NoError(t, err)
	assert.True(t, got.Published)
	require.NotNil(t, got.PublishedAt)
	first := *got.PublishedAt

	got, err = repo.SetPublished(p.ID, true)
	require.NoError(t, err)
	assert.True(t, first.Equal(*got.PublishedAt))

	got, err = repo.SetPublished(p.ID, false)
	require.NoError(t, err)
	assert.False(t, got.Published)

	_, err = repo.SetPublished(99, true)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestPropertyRepository_Images(t *testing.T) {
	repo := NewPropertyRepository(newTestDB(t))
	p := newProperty("IMG", models.CategoryHouse, "Lyon", 300000)
	require.NoError(t, repo.Create(p))

	pos, err := repo.NextImagePosition(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	for i := 0; i < 2; i++ {
		pos, err := repo.NextImagePosition(p.ID)
		require.NoError(t, err)
		require.NoError(t, repo.AddImage(&models.PropertyImage{
			PropertyID: p.ID, Path: "properties/1/x.jpg", URL: "/media/x.jpg", Position: pos,
		}))
	}

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 2)
	assert.Equal(t, 0, got.Images[0].Position)
	assert.Equal(t, 1, got.Images[1].Position)

	img, err := repo.GetImage(p.ID, got.Images[0].ID)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteImage(img))

	_, err = repo.GetImage(p.ID, img.ID)
	assert.ErrorIs(t, err, ErrImageNotFound)
	_, err = repo.GetImage(p.ID+1, got.Images[1].ID)
	assert.ErrorIs(t, err, ErrImageNotFound)
}
