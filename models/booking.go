package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment status values for a booking
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Booking status values
const (
	BookingStatusConfirmed = "confirmed"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedBy uuid.UUID `gorm:"type:uuid;index;not null" json:"createdBy"`

	CustomerName string `gorm:"not null" json:"customerName"`
	PhoneNumber  string `gorm:"not null" json:"phoneNumber"`

	BookingTime   time.Time `gorm:"index;not null" json:"bookingTime"`
	EndTime       time.Time `gorm:"not null" json:"endTime"`
	DurationHours int       `gorm:"not null" json:"durationHours"`

	// Snapshot of duration * hourly_rate at creation time; never recomputed
	TotalAmount float64 `gorm:"type:decimal(10,2);not null" json:"totalAmount"`

	PaymentStatus string `gorm:"type:varchar(20);default:'pending'" json:"paymentStatus"`
	BookingStatus string `gorm:"type:varchar(20);default:'confirmed'" json:"bookingStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
