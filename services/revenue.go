// services/revenue.go
package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"courtbook-backend/models"
	"courtbook-backend/utils"
)

// Range specifiers accepted by the revenue and booking-list views
const (
	RangeToday     = "today"
	RangeYesterday = "yesterday"
	RangeWeek      = "week"
	RangeMonth     = "month"
	RangeYear      = "year"
	RangeCustom    = "custom"
	RangeAll       = "all"
)

// RevenueSummary carries both count semantics on purpose: the revenue
// view reports paid bookings only, the booking list counts every
// booking in range regardless of payment status.
type RevenueSummary struct {
	Total     float64 `json:"total"`
	PaidCount int     `json:"paidCount"`
	AllCount  int     `json:"allCount"`
}

// Bucket is one bar of a chart. Buckets with no paid bookings are
// present with a zero income, never absent.
type Bucket struct {
	Name   string  `json:"name"`
	Income float64 `json:"income"`
}

// ResolveRange turns a range specifier into [from, to] bounds, both
// inclusive. Custom ranges extend the end date to the end of its day.
func ResolveRange(spec string, now time.Time, customStart, customEnd time.Time) (time.Time, time.Time, error) {
	dayStart := utils.BeginningOfDay(now)

	switch spec {
	case RangeToday:
		return dayStart, dayStart.AddDate(0, 0, 1), nil
	case RangeYesterday:
		return dayStart.AddDate(0, 0, -1), dayStart, nil
	case RangeWeek:
		return now.AddDate(0, 0, -7), now, nil
	case RangeMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, 0).Add(-time.Second)
		return first, last, nil
	case RangeYear:
		first := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		last := time.Date(now.Year(), 12, 31, 23, 59, 59, 0, now.Location())
		return first, last, nil
	case RangeCustom:
		if customStart.IsZero() || customEnd.IsZero() {
			return time.Time{}, time.Time{}, fmt.Errorf("custom range requires start and end dates")
		}
		end := utils.BeginningOfDay(customEnd).AddDate(0, 0, 1).Add(-time.Second)
		return customStart, end, nil
	case RangeAll:
		return time.Time{}, now.AddDate(100, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown range %q", spec)
	}
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// Aggregate computes the revenue summary for the bookings whose slot
// starts within [from, to]. Only paid bookings contribute to Total.
func Aggregate(bookings []models.Booking, from, to time.Time) RevenueSummary {
	var summary RevenueSummary
	for _, b := range bookings {
		if !inRange(b.BookingTime, from, to) {
			continue
		}
		summary.AllCount++
		if b.PaymentStatus == models.PaymentStatusPaid {
			summary.PaidCount++
			summary.Total += b.TotalAmount
		}
	}
	return summary
}

// PaidInRange returns the paid bookings within [from, to], newest
// first — the revenue view's transaction history.
func PaidInRange(bookings []models.Booking, from, to time.Time) []models.Booking {
	paid := make([]models.Booking, 0)
	for _, b := range bookings {
		if b.PaymentStatus == models.PaymentStatusPaid && inRange(b.BookingTime, from, to) {
			paid = append(paid, b)
		}
	}
	sort.Slice(paid, func(i, j int) bool {
		return paid[i].BookingTime.After(paid[j].BookingTime)
	})
	return paid
}

// FilterBookings applies the booking-list filter: a date range plus a
// case-insensitive search over customer name and phone number. Every
// matching booking counts here, paid or not.
func FilterBookings(bookings []models.Booking, spec, search string, now time.Time) ([]models.Booking, error) {
	from, to, err := ResolveRange(spec, now, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	searchLower := strings.ToLower(search)
	filtered := make([]models.Booking, 0)
	for _, b := range bookings {
		if !inRange(b.BookingTime, from, to) {
			continue
		}
		if searchLower != "" &&
			!strings.Contains(strings.ToLower(b.CustomerName), searchLower) &&
			!strings.Contains(b.PhoneNumber, searchLower) {
			continue
		}
		filtered = append(filtered, b)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].BookingTime.After(filtered[j].BookingTime)
	})
	return filtered, nil
}

func paidIncomeBetween(bookings []models.Booking, from, to time.Time) float64 {
	var total float64
	for _, b := range bookings {
		if b.PaymentStatus == models.PaymentStatusPaid &&
			!b.BookingTime.Before(from) && b.BookingTime.Before(to) {
			total += b.TotalAmount
		}
	}
	return total
}

// DayBuckets breaks today's paid income into one bucket per operating
// hour, open through close. Inverted hours (close before open) yield
// no buckets rather than failing; the availability checker degrades
// the same way under that configuration.
func DayBuckets(bookings []models.Booking, now time.Time, openHour, closeHour int) []Bucket {
	if closeHour < openHour {
		return []Bucket{}
	}
	buckets := make([]Bucket, 0, closeHour-openHour+1)
	for h := openHour; h <= closeHour; h++ {
		hourStart := time.Date(now.Year(), now.Month(), now.Day(), h, 0, 0, 0, now.Location())
		hourEnd := hourStart.Add(time.Hour)
		buckets = append(buckets, Bucket{
			Name:   fmt.Sprintf("%d:00", h),
			Income: paidIncomeBetween(bookings, hourStart, hourEnd),
		})
	}
	return buckets
}

// WeekBuckets produces one bucket per day for the trailing 7 days.
func WeekBuckets(bookings []models.Booking, now time.Time) []Bucket {
	buckets := make([]Bucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := utils.BeginningOfDay(now.AddDate(0, 0, -i))
		buckets = append(buckets, Bucket{
			Name:   day.Format("Mon"),
			Income: paidIncomeBetween(bookings, day, day.AddDate(0, 0, 1)),
		})
	}
	return buckets
}

// MonthBuckets produces one bucket per calendar day of the current
// month.
func MonthBuckets(bookings []models.Booking, now time.Time) []Bucket {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	buckets := make([]Bucket, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(now.Year(), now.Month(), d, 0, 0, 0, 0, now.Location())
		buckets = append(buckets, Bucket{
			Name:   fmt.Sprintf("%d", d),
			Income: paidIncomeBetween(bookings, day, day.AddDate(0, 0, 1)),
		})
	}
	return buckets
}

// DashboardMetrics are the headline numbers on the overview page.
type DashboardMetrics struct {
	TotalIncome     float64 `json:"totalIncome"`
	TotalBookings   int     `json:"totalBookings"`
	UniqueCustomers int     `json:"uniqueCustomers"`
	TodayIncome     float64 `json:"todayIncome"`
	TodayCount      int     `json:"todayCount"`
	MonthIncome     float64 `json:"monthIncome"`
	MonthCount      int     `json:"monthCount"`
}

// ComputeDashboardMetrics derives the overview stats from the full
// booking collection. Customers are deduplicated by phone number.
func ComputeDashboardMetrics(bookings []models.Booking, now time.Time) DashboardMetrics {
	dayStart := utils.BeginningOfDay(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	metrics := DashboardMetrics{TotalBookings: len(bookings)}
	phones := make(map[string]bool)

	for _, b := range bookings {
		phones[b.PhoneNumber] = true
		paid := b.PaymentStatus == models.PaymentStatusPaid
		if paid {
			metrics.TotalIncome += b.TotalAmount
		}

		if !b.BookingTime.Before(dayStart) && b.BookingTime.Before(dayStart.AddDate(0, 0, 1)) {
			metrics.TodayCount++
			if paid {
				metrics.TodayIncome += b.TotalAmount
			}
		}
		if !b.BookingTime.Before(monthStart) {
			metrics.MonthCount++
			if paid {
				metrics.MonthIncome += b.TotalAmount
			}
		}
	}

	metrics.UniqueCustomers = len(phones)
	return metrics
}
