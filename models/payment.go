package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment methods accepted at the desk
const (
	PaymentMethodCash = "cash"
	PaymentMethodUPI  = "upi"
)

// Payment is an append-only ledger row. Rows are never updated or
// deleted, and deleting a booking does not cascade here.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"bookingId"`

	AmountPaid    float64 `gorm:"type:decimal(10,2);not null" json:"amountPaid"`
	PaymentMethod string  `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	ReceiptNo     string  `gorm:"uniqueIndex;not null" json:"receiptNo"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
