// controllers/settings.go
package controllers

import (
	"net/http"

	"courtbook-backend/config"
	"courtbook-backend/services"
	"courtbook-backend/utils"

	"github.com/gin-gonic/gin"
)

var recognizedSettings = map[string]bool{
	services.SettingHourlyRate:     true,
	services.SettingOpenTime:       true,
	services.SettingCloseTime:      true,
	services.SettingUPIID:          true,
	services.SettingWhatsAppNumber: true,
}

type UpdateSettingInput struct {
	Value string `json:"value" binding:"required"`
}

// GetSettings returns the whole settings map, seeding the hourly_rate
// default on first read.
func GetSettings(c *gin.Context) {
	registry := services.NewSettingsRegistry(config.DB)

	settings, err := registry.Load()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	if err := registry.EnsureDefaults(settings); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to seed default settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSetting upserts a single settings key.
func UpdateSetting(c *gin.Context) {
	name := c.Param("name")
	if !recognizedSettings[name] {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown setting: "+name)
		return
	}

	var input UpdateSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	registry := services.NewSettingsRegistry(config.DB)
	if err := registry.Upsert(name, input.Value); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": name, "value": input.Value})
}
