package controllers

import (
	"net/http"
	"time"

	"courtbook-backend/config"
	"courtbook-backend/services"
	"courtbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview returns the headline metrics plus the chart
// buckets for the requested time range (day, week or month). The day
// view buckets by operating hour; week is the trailing 7 days; month
// is one bucket per calendar day.
func GetDashboardOverview(c *gin.Context) {
	timeRange := c.DefaultQuery("range", "week")
	now := time.Now()

	store := services.NewStore(config.DB)
	bookings, err := store.FetchBookings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	metrics := services.ComputeDashboardMetrics(bookings, now)

	var buckets []services.Bucket
	switch timeRange {
	case "day":
		registry := services.NewSettingsRegistry(config.DB)
		settings, err := registry.Load()
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
			return
		}
		buckets = services.DayBuckets(bookings, now, services.OpenHour(settings), services.CloseHour(settings))
	case "week":
		buckets = services.WeekBuckets(bookings, now)
	case "month":
		buckets = services.MonthBuckets(bookings, now)
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown range, expected day, week or month")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics": metrics,
		"chart": gin.H{
			"range":   timeRange,
			"buckets": buckets,
		},
	})
}
