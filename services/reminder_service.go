// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"courtbook-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends the facility owner a daily digest of bookings
// whose slot has ended but are still marked pending, so unpaid slots
// do not slip through.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendPendingPaymentDigest()
	})

	c.Start()
	log.Println("Payment reminder scheduler started")
}

// SendPendingPaymentDigest collects every booking that has ended but
// is still unpaid and sends one WhatsApp summary to the configured
// number. A missing whatsapp_number setting skips the run quietly.
func (s *ReminderService) SendPendingPaymentDigest() {
	log.Println("Starting pending payment digest...")

	registry := NewSettingsRegistry(s.db)
	settings, err := registry.Load()
	if err != nil {
		log.Printf("Failed to load settings: %v", err)
		return
	}

	number := settings[SettingWhatsAppNumber]
	if number == "" {
		log.Println("No WhatsApp number configured, skipping digest")
		return
	}

	var pending []models.Booking
	if err := s.db.Where("payment_status = ? AND end_time < ?", models.PaymentStatusPending, time.Now()).
		Order("booking_time ASC").
		Find(&pending).Error; err != nil {
		log.Printf("Failed to fetch pending bookings: %v", err)
		return
	}

	if len(pending) == 0 {
		log.Println("No pending payments, nothing to send")
		return
	}

	var sb strings.Builder
	var due float64
	sb.WriteString(fmt.Sprintf("Payment reminder: %d booking(s) awaiting payment\n", len(pending)))
	for _, b := range pending {
		due += b.TotalAmount
		sb.WriteString(fmt.Sprintf("- %s (%s) %s, Rs. %.0f\n",
			b.CustomerName, b.PhoneNumber,
			b.BookingTime.Format("02 Jan 15:04"), b.TotalAmount))
	}
	sb.WriteString(fmt.Sprintf("Total due: Rs. %.0f", due))
	message := sb.String()

	to := number
	if !strings.HasPrefix(to, "+") {
		to = "+" + to
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send digest to %s: %v", number, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Digest sent to %s, SID: %s", number, *resp.Sid)
	} else {
		log.Printf("Digest sent to %s, but no SID returned", number)
	}

	for _, b := range pending {
		notificationLog := models.NotificationLog{
			BookingID:    b.ID,
			Message:      message,
			Status:       status,
			ErrorMessage: errorMsg,
			Channel:      "whatsapp",
			SentAt:       time.Now(),
		}
		if err := s.db.Create(&notificationLog).Error; err != nil {
			log.Printf("Failed to log reminder for booking %s: %v", b.ID, err)
		}
	}

	log.Println("Pending payment digest completed")
}
