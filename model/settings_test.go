package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	// Named shared in-memory DB so gorm's pooled connections all see the
	// same database, isolated per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&Settings{})
	assert.NoError(t, err)

	return db
}

func TestLoadSettings_DefaultsWhenUnsaved(t *testing.T) {
	db := setupSettingsTestDB(t)

	s, err := LoadSettings(db)
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", s.APIURL)
	assert.Equal(t, 5, s.RefreshInterval)
	assert.Equal(t, 100, s.MaxAnomaliesDisplay)
	assert.Equal(t, 0.7, s.RiskThreshold)
	assert.True(t, s.EnableAutoRefresh)
	assert.False(t, s.ShowAdvancedMetrics)
}

func TestSaveSettings_CreatesRow(t *testing.T) {
	db := setupSettingsTestDB(t)

	in := DefaultSettings()
	in.RiskThreshold = 0.6
	in.MaxAnomaliesDisplay = 50

	saved, err := SaveSettings(db, in)
	assert.NoError(t, err)
	assert.NotZero(t, saved.ID)

	loaded, err := LoadSettings(db)
	assert.NoError(t, err)
	assert.Equal(t, 0.6, loaded.RiskThreshold)
	assert.Equal(t, 50, loaded.MaxAnomaliesDisplay)
}

func TestSaveSettings_UpsertsSingleRow(t *testing.T) {
	db := setupSettingsTestDB(t)

	first, err := SaveSettings(db, DefaultSettings())
	assert.NoError(t, err)

	update := DefaultSettings()
	update.DarkMode = false
	update.RefreshInterval = 10
	second, err := SaveSettings(db, update)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&Settings{}).Count(&count)
	assert.Equal(t, int64(1), count)

	loaded, err := LoadSettings(db)
	assert.NoError(t, err)
	assert.False(t, loaded.DarkMode)
	assert.Equal(t, 10, loaded.RefreshInterval)
}

func TestResetSettings_RestoresDefaults(t *testing.T) {
	db := setupSettingsTestDB(t)

	custom := DefaultSettings()
	custom.RiskThreshold = 0.2
	custom.EnableAutoRefresh = false
	_, err := SaveSettings(db, custom)
	assert.NoError(t, err)

	reset, err := ResetSettings(db)
	assert.NoError(t, err)
	assert.Equal(t, 0.7, reset.RiskThreshold)
	assert.True(t, reset.EnableAutoRefresh)

	loaded, err := LoadSettings(db)
	assert.NoError(t, err)
	assert.Equal(t, 0.7, loaded.RiskThreshold)
}
