package repositories

import (
	"testing"
	"time"

	"etude/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRepository(t *testing.T) {
	repo := NewContactRepository(newTestDB(t))

	for i, ref := range []string{"r-1", "r-2", "r-3"} {
		req := &models.ContactRequest{
			Reference: ref,
			Name:      "Client",
			Email:     "client@example.fr",
			Subject:   "vente",
			Message:   "Bonjour",
			Consent:   true,
			Status:    models.ContactStatusNew,
			Metadata:  models.JSON{"index": i},
		}
		require.NoError(t, repo.Create(req))
	}

	items, total, err := repo.List("", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 3)

	at := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)
	handled, err := repo.MarkHandled(items[0].ID, 7, at)
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusHandled, handled.Status)
	require.NotNil(t, handled.HandledBy)
	assert.Equal(t, uint(7), *handled.HandledBy)

	again, err := repo.MarkHandled(items[0].ID, 8, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, uint(7), *again.HandledBy)

	fresh, total, err := repo.List(models.ContactStatusNew, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, fresh, 2)

	_, err = repo.MarkHandled(404, 1, at)
	assert.ErrorIs(t, err, ErrContactNotFound)
}
