// services/availability.go
package services

import (
	"fmt"
	"time"

	"courtbook-backend/models"
)

// Reasons a proposed slot can be rejected
const (
	ReasonPastTime     = "past_time"
	ReasonOutsideHours = "outside_hours"
	ReasonOverlap      = "overlap"
)

type Availability struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// CheckAvailability validates a proposed slot against "now", the
// facility's operating hours and the bookings already on that date.
// Rules run in order and the first failure wins:
//
//  1. a slot starting in the past is rejected,
//  2. the slot must fall inside [openHour, closeHour] — ending exactly
//     on the closing hour is fine, a single minute past it is not,
//  3. the slot must not overlap any existing booking on the same date.
//
// The overlap test is strict, so back-to-back bookings (one ends
// exactly when the next starts) are allowed. Callers are expected to
// have rejected non-positive durations before calling.
func CheckAvailability(start, end time.Time, sameDay []models.Booking, now time.Time, openHour, closeHour int) Availability {
	if start.Before(now) {
		return Availability{
			Valid:   false,
			Reason:  ReasonPastTime,
			Message: "Cannot book for a past time.",
		}
	}

	startHour := start.Hour()
	endHour := end.Hour()
	endMinutes := end.Minute()

	if startHour < openHour || endHour > closeHour || (endHour == closeHour && endMinutes > 0) {
		return Availability{
			Valid:   false,
			Reason:  ReasonOutsideHours,
			Message: fmt.Sprintf("Booking must be between %d:00 and %d:00.", openHour, closeHour),
		}
	}

	for _, existing := range sameDay {
		if !sameCalendarDate(existing.BookingTime, start) {
			continue
		}
		// Overlap: (StartA < EndB) && (EndA > StartB)
		if start.Before(existing.EndTime) && end.After(existing.BookingTime) {
			return Availability{
				Valid:   false,
				Reason:  ReasonOverlap,
				Message: "Selected time overlaps with an existing booking.",
			}
		}
	}

	return Availability{Valid: true}
}

func sameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
