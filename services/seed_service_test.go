package services

import (
	"context"
	"testing"

	"github.com/4GeeksAcademy/Place-Between-Daniel/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogParses(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	require.NotEmpty(t, c.Activities)
	require.NotEmpty(t, c.Emotions)

	seen := map[string]bool{}
	for _, a := range c.Activities {
		assert.NotEmpty(t, a.ID)
		assert.NotEmpty(t, a.Title)
		assert.True(t, models.ActivityType(a.Phase).Valid(), a.ID)
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
	}
}

func TestSeedActivitiesValidation(t *testing.T) {
	svc, mock, _ := newMockService(t)
	ctx := context.Background()

	_, err := svc.SeedActivities(ctx, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SeedActivities(ctx, []SeedActivity{{ID: "x", Title: ""}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.SeedActivities(ctx, []SeedActivity{{ID: "x", Title: "X", Phase: "noon"}})
	assert.ErrorIs(t, err, ErrValidation)

	assert.NoError(t, mock.ExpectationsWereMet())
}
