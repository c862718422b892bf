package dashboard

import (
	"context"
	"testing"
	"time"

	"etude/internal/models"
	"etude/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repositories.Migrate(db))
	return db
}

func TestGetOfficeDashboard_Empty(t *testing.T) {
	svc := NewService(newTestDB(t))

	d, err := svc.GetOfficeDashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, d.Listings.Total)
	assert.Zero(t, d.Listings.AveragePublishedPrice)
	assert.Empty(t, d.Listings.ByCategory)
	assert.Empty(t, d.RecentContacts)
}

func TestGetOfficeDashboard(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	properties := []models.Property{
		{Reference: "MA-1", Title: "Maison", Category: models.CategoryHouse, Price: 300000, Published: true},
		{Reference: "AP-1", Title: "T2", Category: models.CategoryApartment, Price: 100000, Published: true},
		{Reference: "AP-2", Title: "T3", Category: models.CategoryApartment, Price: 150000},
		{Reference: "TE-1", Title: "Terrain", Category: models.CategoryLand, Price: 50000},
	}
	require.NoError(t, db.Create(&properties).Error)
	require.NoError(t, db.Delete(&properties[3]).Error)

	contacts := []models.ContactRequest{
		{Reference: "c1", Name: "A", Email: "a@x.fr", Subject: "vente", Message: "m", Status: models.ContactStatusNew, CreatedAt: now.AddDate(0, 0, -1)},
		{Reference: "c2", Name: "B", Email: "b@x.fr", Subject: "vente", Message: "m", Status: models.ContactStatusHandled, CreatedAt: now.AddDate(0, 0, -3)},
		{Reference: "c3", Name: "C", Email: "c@x.fr", Subject: "succession", Message: "m", Status: models.ContactStatusNew, CreatedAt: now.AddDate(0, -2, 0)},
	}
	require.NoError(t, db.Create(&contacts).Error)

	svc := &service{db: db, now: func() time.Time { return now }}
	d, err := svc.GetOfficeDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), d.Listings.Total)
	assert.Equal(t, int64(2), d.Listings.Published)
	assert.Equal(t, int64(1), d.Listings.Drafts)
	assert.InDelta(t, 200000, d.Listings.AveragePublishedPrice, 0.001)
	assert.Equal(t, map[string]int64{"appartement": 2, "maison": 1}, d.Listings.ByCategory)

	assert.Equal(t, int64(2), d.Contacts.New)
	assert.Equal(t, int64(1), d.Contacts.Handled)
	assert.Equal(t, int64(2), d.Contacts.Last30Days)
	assert.Equal(t, map[string]int64{"vente": 2}, d.Contacts.BySubject)

	require.Len(t, d.RecentContacts, 2)
	assert.Equal(t, "c1", d.RecentContacts[0].Reference)
}
