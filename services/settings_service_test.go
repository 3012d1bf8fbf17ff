package services

import (
	"testing"

	"aier-cms/models"
	"aier-cms/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsService(t *testing.T) SettingsService {
	db := newTestDB(t)
	return NewSettingsService(repositories.NewSettingsRepository(db))
}

func TestSettingsGetOrCreate(t *testing.T) {
	svc := newSettingsService(t)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, models.SettingsID, settings.ID)
	assert.Equal(t, models.DefaultSiteName, settings.SiteName)
	require.NotNil(t, settings.Tagline)
	assert.Equal(t, models.DefaultTagline, *settings.Tagline)
	assert.True(t, settings.IsPublic)

	again, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, settings.ID, again.ID)
}

func TestSettingsUpdateMerges(t *testing.T) {
	svc := newSettingsService(t)

	_, err := svc.Get()
	require.NoError(t, err)

	updated, err := svc.Update(models.UpdateSettingsRequest{
		SiteName: set("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.SiteName)
	require.NotNil(t, updated.Tagline)
	assert.Equal(t, models.DefaultTagline, *updated.Tagline)

	// Explicit null clears the tagline
	updated, err = svc.Update(models.UpdateSettingsRequest{
		Tagline: models.Optional[string]{Set: true, Valid: false},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Tagline)
	assert.Equal(t, "Renamed", updated.SiteName)
}

func TestSettingsUpdateCreatesWhenAbsent(t *testing.T) {
	svc := newSettingsService(t)

	settings, err := svc.Update(models.UpdateSettingsRequest{
		IsPublic: set(false),
	})
	require.NoError(t, err)
	assert.Equal(t, models.SettingsID, settings.ID)
	assert.Equal(t, models.DefaultSiteName, settings.SiteName)
	assert.False(t, settings.IsPublic)
}
