package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHourlyRate(t *testing.T) {
	assert.Equal(t, 150.0, HourlyRate(map[string]string{SettingHourlyRate: "150"}))
	assert.Equal(t, 150.5, HourlyRate(map[string]string{SettingHourlyRate: "150.5"}))
	// Unset or garbage both fall back to zero, the pre-first-save state
	assert.Equal(t, 0.0, HourlyRate(map[string]string{}))
	assert.Equal(t, 0.0, HourlyRate(map[string]string{SettingHourlyRate: "abc"}))
}

func TestOpenCloseHourDefaults(t *testing.T) {
	empty := map[string]string{}

	assert.Equal(t, 6, OpenHour(empty))
	assert.Equal(t, 23, CloseHour(empty))
}

func TestOpenCloseHourParsing(t *testing.T) {
	settings := map[string]string{
		SettingOpenTime:  "08:30",
		SettingCloseTime: "22:00",
	}

	assert.Equal(t, 8, OpenHour(settings))
	assert.Equal(t, 22, CloseHour(settings))
}

func TestHourParsingRejectsGarbage(t *testing.T) {
	assert.Equal(t, 6, OpenHour(map[string]string{SettingOpenTime: "noon"}))
	assert.Equal(t, 6, OpenHour(map[string]string{SettingOpenTime: "25:00"}))
	assert.Equal(t, 23, CloseHour(map[string]string{SettingCloseTime: "-1:00"}))
}

func TestHourParsingWithoutMinutes(t *testing.T) {
	assert.Equal(t, 7, OpenHour(map[string]string{SettingOpenTime: "7"}))
}
