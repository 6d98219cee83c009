// controllers/payment.go
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

// Active payment flows. Abandoned flows are evicted after an hour; a
// desk payment never legitimately takes longer than that.
var paymentFlows = services.NewFlowRegistry(time.Hour)

// Actions accepted by AdvancePaymentFlow
const (
	actionPayLater     = "pay_later"
	actionPayNow       = "pay_now"
	actionSelectMethod = "select_method"
	actionBack         = "back"
	actionConfirm      = "confirm"
)

type AdvanceFlowInput struct {
	Action string `json:"action" binding:"required,oneof=pay_later pay_now select_method back confirm"`
	Method string `json:"method" binding:"omitempty,oneof=cash upi"`
}

func flowState(f *services.PaymentFlow) gin.H {
	state := gin.H{
		"flowId":    f.ID,
		"bookingId": f.BookingID,
		"amount":    f.Amount,
		"step":      f.Step(),
	}
	if f.Method() != "" {
		state["method"] = f.Method()
	}
	if f.Step() == services.StepVerify && f.Method() == models.PaymentMethodUPI {
		intent, ok := f.UPIIntent()
		state["upiConfigured"] = ok
		if ok {
			state["upiIntent"] = intent
		}
	}
	return state
}

// StartPaymentFlow opens a payment flow for a pending booking. Both
// entry points — right after creating a booking and later from the
// pending list — come through here.
func StartPaymentFlow(c *gin.Context) {
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

	if booking.PaymentStatus == models.PaymentStatusPaid {
		utils.RespondWithError(c, http.StatusConflict, "Booking is already paid")
		return
	}

	registry := services.NewSettingsRegistry(config.DB)
	settings, err := registry.Load()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}

	flow := services.NewPaymentFlow(booking.ID, booking.TotalAmount, settings[services.SettingUPIID])
	paymentFlows.Put(flow)

	c.JSON(http.StatusCreated, flowState(flow))
}

// GetPaymentFlow reports the current step of a flow, including the
// UPI intent (or its not-configured state) during UPI verification.
func GetPaymentFlow(c *gin.Context) {
	flowUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid flow ID format")
		return
	}

	var state gin.H
	found := paymentFlows.WithFlow(flowUUID, func(f *services.PaymentFlow) {
		state = flowState(f)
	})
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Payment flow not found")
		return
	}

	c.JSON(http.StatusOK, state)
}

// AdvancePaymentFlow applies one transition. Closing the modal without
// confirming simply abandons the flow; nothing is persisted before the
// confirm action. The transition runs under the flow's own lock, so
// concurrent advances on one flow are serialized.
func AdvancePaymentFlow(c *gin.Context) {
	flowUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid flow ID format")
		return
	}

	var input AdvanceFlowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Action == actionSelectMethod && input.Method == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Method is required for select_method")
		return
	}

	store := services.NewStore(config.DB)

	var status int
	var body gin.H
	var done bool

	found := paymentFlows.WithFlow(flowUUID, func(flow *services.PaymentFlow) {
		var err error
		switch input.Action {
		case actionPayLater:
			err = flow.PayLater()
		case actionPayNow:
			err = flow.PayNow()
		case actionSelectMethod:
			err = flow.SelectMethod(input.Method)
		case actionBack:
			err = flow.Back()
		case actionConfirm:
			err = flow.Confirm(store)
		}

		done = flow.Done()

		if err != nil {
			if errors.Is(err, services.ErrInvalidTransition) || errors.Is(err, services.ErrUnknownMethod) {
				status = http.StatusConflict
				body = gin.H{"error": err.Error()}
				done = false
				return
			}
			if done {
				// The booking was marked paid but the ledger insert
				// failed; report it without undoing the confirmation.
				status = http.StatusOK
				body = gin.H{
					"flowId":  flow.ID,
					"step":    flow.Step(),
					"warning": "Booking updated but failed to record payment details",
				}
				return
			}
			status = http.StatusInternalServerError
			body = gin.H{"error": "Failed to update booking status"}
			return
		}

		status = http.StatusOK
		body = flowState(flow)
	})
	if !found {
		utils.RespondWithError(c, http.StatusNotFound, "Payment flow not found")
		return
	}

	if done {
		paymentFlows.Drop(flowUUID)
	}

	c.JSON(status, body)
}

// GetPayments returns the full payment ledger, newest first.
func GetPayments(c *gin.Context) {
	store := services.NewStore(config.DB)
	payments, err := store.FetchPayments()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments, "count": len(payments)})
}
