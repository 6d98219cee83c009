// services/settings.go
package services

import (
	"strconv"
	"strings"

	"courtbook-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Settings keys
const (
	SettingHourlyRate     = "hourly_rate"
	SettingOpenTime       = "open_time"
	SettingCloseTime      = "close_time"
	SettingUPIID          = "upi_id"
	SettingWhatsAppNumber = "whatsapp_number"
)

// Defaults used when a key has never been saved
const (
	DefaultOpenHour  = 6
	DefaultCloseHour = 23
)

// SettingsRegistry reads and upserts the constants table. The loaded
// map is a snapshot; callers re-load per session, not per request.
type SettingsRegistry struct {
	db *gorm.DB
}

func NewSettingsRegistry(db *gorm.DB) *SettingsRegistry {
	return &SettingsRegistry{db: db}
}

// Load reads every constant into a name → value map.
func (r *SettingsRegistry) Load() (map[string]string, error) {
	var constants []models.Constant
	if err := r.db.Find(&constants).Error; err != nil {
		return nil, err
	}

	settings := make(map[string]string, len(constants))
	for _, c := range constants {
		settings[c.Name] = c.Value
	}
	return settings, nil
}

// EnsureDefaults seeds hourly_rate with "0" the first time settings
// are loaded and the key has never been saved.
func (r *SettingsRegistry) EnsureDefaults(settings map[string]string) error {
	if _, ok := settings[SettingHourlyRate]; ok {
		return nil
	}
	if err := r.Upsert(SettingHourlyRate, "0"); err != nil {
		return err
	}
	settings[SettingHourlyRate] = "0"
	return nil
}

// Upsert creates or replaces one settings key.
func (r *SettingsRegistry) Upsert(name, value string) error {
	constant := models.Constant{Name: name, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&constant).Error
}

// HourlyRate parses the configured rate, 0 until first saved.
func HourlyRate(settings map[string]string) float64 {
	rate, err := strconv.ParseFloat(settings[SettingHourlyRate], 64)
	if err != nil {
		return 0
	}
	return rate
}

// OpenHour returns the opening hour-of-day, default 6.
func OpenHour(settings map[string]string) int {
	return parseHourOfDay(settings[SettingOpenTime], DefaultOpenHour)
}

// CloseHour returns the closing hour-of-day, default 23.
func CloseHour(settings map[string]string) int {
	return parseHourOfDay(settings[SettingCloseTime], DefaultCloseHour)
}

// parseHourOfDay extracts the hour from an "HH:MM" value.
func parseHourOfDay(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	hourPart := value
	if idx := strings.Index(value, ":"); idx >= 0 {
		hourPart = value[:idx]
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return fallback
	}
	return hour
}
