// services/booking_store.go
package services

import (
	"errors"
	"fmt"
	"time"

	"courtbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

// Fields a generic booking update is allowed to touch. The id, the
// creator and the financial snapshot (times, duration, amount) are
// immutable after creation.
var updatableBookingFields = map[string]bool{
	"customer_name":  true,
	"phone_number":   true,
	"payment_status": true,
	"booking_status": true,
}

// Store owns the bookings and payments collections. All mutations go
// through it and every method returns exactly what the database
// confirmed, so callers never hold optimistic state.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// BookingDraft is a validated, not-yet-persisted slot.
type BookingDraft struct {
	CustomerName  string
	PhoneNumber   string
	BookingTime   time.Time
	EndTime       time.Time
	DurationHours int
	TotalAmount   float64
}

// CreateBookings persists a batch of drafts as one transaction,
// stamping each with the creating user, and returns the canonical rows
// with their generated ids.
func (s *Store) CreateBookings(drafts []BookingDraft, createdBy uuid.UUID) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0, len(drafts))
	for _, d := range drafts {
		bookings = append(bookings, models.Booking{
			CreatedBy:     createdBy,
			CustomerName:  d.CustomerName,
			PhoneNumber:   d.PhoneNumber,
			BookingTime:   d.BookingTime,
			EndTime:       d.EndTime,
			DurationHours: d.DurationHours,
			TotalAmount:   d.TotalAmount,
			PaymentStatus: models.PaymentStatusPending,
			BookingStatus: models.BookingStatusConfirmed,
		})
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&bookings).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// UpdateBooking merges the given fields into a booking. Only the
// whitelisted mutable fields are accepted; anything else is rejected
// before a store call is made.
func (s *Store) UpdateBooking(id uuid.UUID, fields map[string]interface{}) (*models.Booking, error) {
	for name := range fields {
		if !updatableBookingFields[name] {
			return nil, fmt.Errorf("field %q is not updatable", name)
		}
	}

	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&booking).Updates(fields).Error; err != nil {
		return nil, err
	}

	// Re-read so the caller sees exactly what was persisted
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}

// DeleteBooking hard-deletes a booking. Payment rows referencing it
// are intentionally left in place as an audit trail.
func (s *Store) DeleteBooking(id uuid.UUID) error {
	result := s.db.Delete(&models.Booking{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// MarkBookingPaid flips a booking's payment status to paid.
func (s *Store) MarkBookingPaid(id uuid.UUID) error {
	result := s.db.Model(&models.Booking{}).Where("id = ?", id).
		Update("payment_status", models.PaymentStatusPaid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// RecordPayment appends a ledger row. Ledger rows are insert-only.
func (s *Store) RecordPayment(p *models.Payment) error {
	return s.db.Create(p).Error
}

// FetchBookings returns the full booking collection. No pagination:
// a single facility's volume stays small enough to read whole.
func (s *Store) FetchBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// FetchBookingsOn returns the bookings whose slot starts on the given
// calendar date, for availability re-validation at submission time.
func (s *Store) FetchBookingsOn(date time.Time) ([]models.Booking, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var bookings []models.Booking
	if err := s.db.Where("booking_time >= ? AND booking_time < ?", dayStart, dayEnd).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBooking fetches one booking by id.
func (s *Store) GetBooking(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

// FetchPayments returns the full payment ledger.
func (s *Store) FetchPayments() ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
