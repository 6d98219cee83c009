// services/payment_flow.go
package services

import (
	"errors"
	"time"

	"courtbook-backend/models"
	"courtbook-backend/utils"

	"github.com/google/uuid"
)

// Steps of a payment flow. A flow starts at choice and ends at either
// confirmed or deferred.
const (
	StepChoice    = "choice"
	StepMethod    = "method"
	StepVerify    = "verify"
	StepConfirmed = "confirmed"
	StepDeferred  = "deferred"
)

var (
	ErrInvalidTransition = errors.New("invalid payment flow transition")
	ErrUnknownMethod     = errors.New("unknown payment method")
)

// PaymentLedger is the slice of the store a flow needs to settle a
// booking. The status update always precedes the ledger insert, so a
// payment row can never exist for a booking still marked pending.
type PaymentLedger interface {
	MarkBookingPaid(id uuid.UUID) error
	RecordPayment(p *models.Payment) error
}

// PaymentFlow walks one booking through choice → method → verify →
// confirmed/deferred. Both entry points (right after creating a
// booking, and later from the pending list) share this one type.
type PaymentFlow struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	Amount    float64

	step   string
	method string
	upiID  string
}

func NewPaymentFlow(bookingID uuid.UUID, amount float64, upiID string) *PaymentFlow {
	return &PaymentFlow{
		ID:        uuid.New(),
		BookingID: bookingID,
		Amount:    amount,
		step:      StepChoice,
		upiID:     upiID,
	}
}

func (f *PaymentFlow) Step() string { return f.step }

func (f *PaymentFlow) Method() string { return f.method }

// Done reports whether the flow reached a terminal step.
func (f *PaymentFlow) Done() bool {
	return f.step == StepConfirmed || f.step == StepDeferred
}

// PayLater defers payment; the booking stays pending.
func (f *PaymentFlow) PayLater() error {
	if f.step != StepChoice {
		return ErrInvalidTransition
	}
	f.step = StepDeferred
	return nil
}

// PayNow moves on to method selection.
func (f *PaymentFlow) PayNow() error {
	if f.step != StepChoice {
		return ErrInvalidTransition
	}
	f.step = StepMethod
	return nil
}

// SelectMethod stores the chosen method and moves to verification.
func (f *PaymentFlow) SelectMethod(method string) error {
	if f.step != StepMethod {
		return ErrInvalidTransition
	}
	if method != models.PaymentMethodCash && method != models.PaymentMethodUPI {
		return ErrUnknownMethod
	}
	f.method = method
	f.step = StepVerify
	return nil
}

// Back returns from verification to method selection.
func (f *PaymentFlow) Back() error {
	if f.step != StepVerify {
		return ErrInvalidTransition
	}
	f.method = ""
	f.step = StepMethod
	return nil
}

// UPIIntent returns the payment-request URI to render as a QR code.
// The second return is false when the flow is not at the UPI
// verification step, or when no UPI id is configured — the latter is a
// degraded state the caller shows as "not configured", not an error.
func (f *PaymentFlow) UPIIntent() (string, bool) {
	if f.step != StepVerify || f.method != models.PaymentMethodUPI {
		return "", false
	}
	if f.upiID == "" {
		return "", false
	}
	return utils.BuildUPIIntent(f.upiID, f.Amount), true
}

// Confirm records the received payment. The booking's status update
// runs first; if it fails, the flow stays at verify and nothing is
// written. The ledger insert follows; if that fails the booking is
// already paid, so the flow still terminates and the error is
// surfaced for the caller to report.
func (f *PaymentFlow) Confirm(ledger PaymentLedger) error {
	if f.step != StepVerify {
		return ErrInvalidTransition
	}

	if err := ledger.MarkBookingPaid(f.BookingID); err != nil {
		return err
	}

	payment := &models.Payment{
		BookingID:     f.BookingID,
		AmountPaid:    f.Amount,
		PaymentMethod: f.method,
		ReceiptNo:     "PAY-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
	}

	f.step = StepConfirmed

	if err := ledger.RecordPayment(payment); err != nil {
		return err
	}
	return nil
}
