// controllers/revenue.go
package controllers

import (
	"net/http"
	"time"

	"courtbook-backend/config"
	"courtbook-backend/services"
	"courtbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetRevenue returns the revenue summary and paid transaction history
// for a date range. Only paid bookings contribute to the total and the
// paid count; the all-bookings count rides along for the list views.
func GetRevenue(c *gin.Context) {
	rangeSpec := c.DefaultQuery("range", services.RangeToday)
	now := time.Now()

	var customStart, customEnd time.Time
	if rangeSpec == services.RangeCustom {
		var err error
		customStart, err = time.ParseInLocation("2006-01-02", c.Query("start"), time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		customEnd, err = time.ParseInLocation("2006-01-02", c.Query("end"), time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid end date, expected YYYY-MM-DD")
			return
		}
	}

	from, to, err := services.ResolveRange(rangeSpec, now, customStart, customEnd)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	store := services.NewStore(config.DB)
	bookings, err := store.FetchBookings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	summary := services.Aggregate(bookings, from, to)
	transactions := services.PaidInRange(bookings, from, to)

	c.JSON(http.StatusOK, gin.H{
		"range":        rangeSpec,
		"summary":      summary,
		"transactions": transactions,
	})
}
