package model

import "gorm.io/gorm"

// SettingsKey is the fixed key the dashboard settings row is stored under.
const SettingsKey = "percepta-settings"

// Settings is the persisted dashboard configuration. Exactly one row exists
// per key; it is read on load, written on explicit save and restored to
// defaults on explicit reset.
type Settings struct {
	gorm.Model
	Key                 string  `json:"-" gorm:"column:setting_key;type:varchar(64);uniqueIndex"`
	APIURL              string  `json:"apiUrl" gorm:"column:api_url;type:varchar(255)"`
	RefreshInterval     int     `json:"refreshInterval" gorm:"column:refresh_interval"`
	EnableNotifications bool    `json:"enableNotifications" gorm:"column:enable_notifications"`
	EnableAutoRefresh   bool    `json:"enableAutoRefresh" gorm:"column:enable_auto_refresh"`
	DarkMode            bool    `json:"darkMode" gorm:"column:dark_mode"`
	ShowAdvancedMetrics bool    `json:"showAdvancedMetrics" gorm:"column:show_advanced_metrics"`
	MaxAnomaliesDisplay int     `json:"maxAnomaliesDisplay" gorm:"column:max_anomalies_display"`
	RiskThreshold       float64 `json:"riskThreshold" gorm:"column:risk_threshold"`
}

// DefaultSettings returns the hard-coded defaults used on first load and on
// reset.
func DefaultSettings() Settings {
	return Settings{
		Key:                 SettingsKey,
		APIURL:              "http://localhost:8000",
		RefreshInterval:     5,
		EnableNotifications: true,
		EnableAutoRefresh:   true,
		DarkMode:            true,
		ShowAdvancedMetrics: false,
		MaxAnomaliesDisplay: 100,
		RiskThreshold:       0.7,
	}
}

// LoadSettings reads the settings row, falling back to defaults when no row
// has been saved yet.
func LoadSettings(db *gorm.DB) (Settings, error) {
	var s Settings
	err := db.Where("setting_key = ?", SettingsKey).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return DefaultSettings(), nil
	}
	if err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

// SaveSettings upserts the settings row under the fixed key.
func SaveSettings(db *gorm.DB, s Settings) (Settings, error) {
	s.Key = SettingsKey

	var existing Settings
	err := db.Where("setting_key = ?", SettingsKey).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		if err := db.Create(&s).Error; err != nil {
			return s, err
		}
		return s, nil
	}
	if err != nil {
		return s, err
	}

	s.ID = existing.ID
	s.CreatedAt = existing.CreatedAt
	if err := db.Save(&s).Error; err != nil {
		return s, err
	}
	return s, nil
}

// ResetSettings restores the hard-coded defaults and persists them.
func ResetSettings(db *gorm.DB) (Settings, error) {
	return SaveSettings(db, DefaultSettings())
}
