// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"courtbook-backend/config"
	"courtbook-backend/models"
	"courtbook-backend/services"
	"courtbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingSlotInput is one proposed slot in a create request
type BookingSlotInput struct {
	CustomerName  string `json:"customerName" binding:"required"`
	PhoneNumber   string `json:"phoneNumber" binding:"required"`
	Date          string `json:"date" binding:"required"`      // YYYY-MM-DD
	StartTime     string `json:"startTime" binding:"required"` // HH:MM
	DurationHours int    `json:"durationHours" binding:"required,min=1"`
}

// CreateBookingInput defines the expected JSON structure for creating
// bookings. Single bookings are a batch of one.
type CreateBookingInput struct {
	Slots []BookingSlotInput `json:"slots" binding:"required,min=1,dive"`
}

// UpdateBookingInput defines the fields the detail view may change
type UpdateBookingInput struct {
	CustomerName  *string `json:"customerName"`
	PhoneNumber   *string `json:"phoneNumber"`
	PaymentStatus *string `json:"paymentStatus" binding:"omitempty,oneof=pending paid"`
	BookingStatus *string `json:"bookingStatus" binding:"omitempty,oneof=confirmed"`
}

func slotStart(slot BookingSlotInput) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", slot.Date+" "+slot.StartTime, time.Local)
}

// CreateBooking validates the proposed slots and persists them as one
// batch. The amount is snapshotted from the current hourly rate and
// never recomputed if the rate changes later.
func CreateBooking(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	registry := services.NewSettingsRegistry(config.DB)
	settings, err := registry.Load()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	hourlyRate := services.HourlyRate(settings)
	openHour := services.OpenHour(settings)
	closeHour := services.CloseHour(settings)

	store := services.NewStore(config.DB)
	now := time.Now()

	var drafts []services.BookingDraft
	var accepted []models.Booking

	for _, slot := range input.Slots {
		if !utils.ValidatePhone(slot.PhoneNumber) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}

		start, err := slotStart(slot)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date or time format")
			return
		}
		end := start.Add(time.Duration(slot.DurationHours) * time.Hour)

		// Re-validate against the freshest booking set at submission
		// time. Two staff racing for the same slot is an accepted
		// last-write-wins limitation.
		sameDay, err := store.FetchBookingsOn(start)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch bookings")
			return
		}
		sameDay = append(sameDay, accepted...)

		availability := services.CheckAvailability(start, end, sameDay, now, openHour, closeHour)
		if !availability.Valid {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  availability.Message,
				"reason": availability.Reason,
			})
			return
		}

		drafts = append(drafts, services.BookingDraft{
			CustomerName:  slot.CustomerName,
			PhoneNumber:   slot.PhoneNumber,
			BookingTime:   start,
			EndTime:       end,
			DurationHours: slot.DurationHours,
			TotalAmount:   hourlyRate * float64(slot.DurationHours),
		})
		// Later slots in the batch must not collide with earlier ones
		accepted = append(accepted, models.Booking{BookingTime: start, EndTime: end})
	}

	bookings, err := store.CreateBookings(drafts, userUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create bookings")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bookings": bookings})
}

// GetBookings lists bookings for a date-range filter with an optional
// customer name / phone search. The returned count includes every
// matching booking, paid or pending.
func GetBookings(c *gin.Context) {
	filter := c.DefaultQuery("filter", services.RangeAll)
	search := c.Query("search")

	store := services.NewStore(config.DB)
	bookings, err := store.FetchBookings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	filtered, err := services.FilterBookings(bookings, filter, search, time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": filtered,
		"count":    len(filtered),
	})
}

// GetBooking retrieves a specific booking by ID
func GetBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	store := services.NewStore(config.DB)
	booking, err := store.GetBooking(bookingUUID)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBooking merges whitelisted fields into an existing booking.
// Times, duration and amount are immutable after creation.
func UpdateBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	fields := map[string]interface{}{}
	if input.CustomerName != nil {
		fields["customer_name"] = *input.CustomerName
	}
	if input.PhoneNumber != nil {
		if !utils.ValidatePhone(*input.PhoneNumber) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		fields["phone_number"] = *input.PhoneNumber
	}
	if input.PaymentStatus != nil {
		fields["payment_status"] = *input.PaymentStatus
	}
	if input.BookingStatus != nil {
		fields["booking_status"] = *input.BookingStatus
	}

	if len(fields) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	store := services.NewStore(config.DB)
	booking, err := store.UpdateBooking(bookingUUID, fields)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// DeleteBooking hard-deletes a booking. Payment rows stay behind as an
// audit trail.
func DeleteBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	store := services.NewStore(config.DB)
	if err := store.DeleteBooking(bookingUUID); err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
