package services

import (
	"testing"
	"time"

	"courtbook-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidBooking(start time.Time, amount float64) models.Booking {
	return models.Booking{
		BookingTime:   start,
		EndTime:       start.Add(time.Hour),
		TotalAmount:   amount,
		PaymentStatus: models.PaymentStatusPaid,
	}
}

func pendingBooking(start time.Time, amount float64) models.Booking {
	return models.Booking{
		BookingTime:   start,
		EndTime:       start.Add(time.Hour),
		TotalAmount:   amount,
		PaymentStatus: models.PaymentStatusPending,
	}
}

func TestAggregatePaidOnlyTotalWithDualCounts(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		paidBooking(now.Add(-2*time.Hour), 150),
		paidBooking(now.Add(-4*time.Hour), 300),
		pendingBooking(now.Add(-1*time.Hour), 450),
	}

	from, to, err := ResolveRange(RangeToday, now, time.Time{}, time.Time{})
	require.NoError(t, err)

	summary := Aggregate(bookings, from, to)

	// Pending bookings count toward AllCount but never the total
	assert.Equal(t, 450.0, summary.Total)
	assert.Equal(t, 2, summary.PaidCount)
	assert.Equal(t, 3, summary.AllCount)
}

func TestAggregateTodayExcludesOtherDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		paidBooking(now.Add(-2*time.Hour), 150),
		paidBooking(now.AddDate(0, 0, -1), 999),
	}

	from, to, err := ResolveRange(RangeToday, now, time.Time{}, time.Time{})
	require.NoError(t, err)

	summary := Aggregate(bookings, from, to)

	assert.Equal(t, 150.0, summary.Total)
	assert.Equal(t, 1, summary.AllCount)
}

func TestResolveRangeYesterday(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

	from, to, err := ResolveRange(RangeYesterday, now, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), to)
}

func TestResolveRangeMonthCoversWholeMonth(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

	from, to, err := ResolveRange(RangeMonth, now, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC), to)
}

func TestResolveRangeCustomExtendsEndToEndOfDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	from, to, err := ResolveRange(RangeCustom, now, start, end)
	require.NoError(t, err)

	assert.Equal(t, start, from)
	assert.Equal(t, time.Date(2025, 6, 10, 23, 59, 59, 0, time.UTC), to)
}

func TestResolveRangeCustomRequiresBounds(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

	_, _, err := ResolveRange(RangeCustom, now, time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestResolveRangeUnknownSpec(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

	_, _, err := ResolveRange("fortnight", now, time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestPaidInRangeSortsNewestFirst(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	older := paidBooking(now.Add(-5*time.Hour), 150)
	newer := paidBooking(now.Add(-1*time.Hour), 300)
	bookings := []models.Booking{older, newer, pendingBooking(now.Add(-2*time.Hour), 450)}

	from, to, err := ResolveRange(RangeToday, now, time.Time{}, time.Time{})
	require.NoError(t, err)

	paid := PaidInRange(bookings, from, to)

	require.Len(t, paid, 2)
	assert.Equal(t, newer.BookingTime, paid[0].BookingTime)
	assert.Equal(t, older.BookingTime, paid[1].BookingTime)
}

func TestFilterBookingsCountsAllStatuses(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		paidBooking(now.Add(-2*time.Hour), 150),
		pendingBooking(now.Add(-1*time.Hour), 150),
	}

	filtered, err := FilterBookings(bookings, RangeToday, "", now)
	require.NoError(t, err)

	// The list view counts every matching booking, paid or not
	assert.Len(t, filtered, 2)
}

func TestFilterBookingsSearch(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	rahul := paidBooking(now.Add(-2*time.Hour), 150)
	rahul.CustomerName = "Rahul Sharma"
	rahul.PhoneNumber = "9876543210"
	priya := pendingBooking(now.Add(-1*time.Hour), 150)
	priya.CustomerName = "Priya Patel"
	priya.PhoneNumber = "9123456780"
	bookings := []models.Booking{rahul, priya}

	byName, err := FilterBookings(bookings, RangeAll, "rahul", now)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Rahul Sharma", byName[0].CustomerName)

	byPhone, err := FilterBookings(bookings, RangeAll, "912345", now)
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Priya Patel", byPhone[0].CustomerName)

	none, err := FilterBookings(bookings, RangeAll, "nobody", now)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDayBucketsAlignToOperatingHours(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		paidBooking(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), 150),
		pendingBooking(time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC), 150),
	}

	buckets := DayBuckets(bookings, now, 6, 23)

	require.Len(t, buckets, 18) // 6:00 through 23:00 inclusive
	assert.Equal(t, "6:00", buckets[0].Name)
	assert.Equal(t, "23:00", buckets[17].Name)

	byName := map[string]float64{}
	for _, b := range buckets {
		byName[b.Name] = b.Income
	}
	assert.Equal(t, 150.0, byName["10:00"])
	// Pending income never lands in a bucket
	assert.Equal(t, 0.0, byName["11:00"])
}

func TestDayBucketsInvertedHours(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

	// Saving close_time earlier than open_time must not break the
	// chart; the day view just goes empty.
	buckets := DayBuckets(nil, now, 20, 8)

	assert.Empty(t, buckets)
	assert.NotNil(t, buckets)
}

func TestWeekBucketsTrailingSevenDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC) // a Sunday
	bookings := []models.Booking{
		paidBooking(time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC), 300),
	}

	buckets := WeekBuckets(bookings, now)

	require.Len(t, buckets, 7)
	assert.Equal(t, "Mon", buckets[0].Name)
	assert.Equal(t, "Sun", buckets[6].Name)
	assert.Equal(t, 300.0, buckets[4].Income) // Friday the 13th
	assert.Equal(t, 0.0, buckets[6].Income)
}

func TestMonthBucketsOnePerCalendarDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

	buckets := MonthBuckets(nil, now)

	require.Len(t, buckets, 30)
	assert.Equal(t, "1", buckets[0].Name)
	assert.Equal(t, "30", buckets[29].Name)
	for _, b := range buckets {
		assert.Equal(t, 0.0, b.Income)
	}
}

func TestComputeDashboardMetrics(t *testing.T) {
	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)

	today := paidBooking(now.Add(-2*time.Hour), 150)
	today.PhoneNumber = "9876543210"
	earlierThisMonth := paidBooking(now.AddDate(0, 0, -10), 300)
	earlierThisMonth.PhoneNumber = "9123456780"
	lastYear := pendingBooking(now.AddDate(-1, 0, 0), 450)
	lastYear.PhoneNumber = "9876543210" // repeat customer

	metrics := ComputeDashboardMetrics([]models.Booking{today, earlierThisMonth, lastYear}, now)

	assert.Equal(t, 450.0, metrics.TotalIncome)
	assert.Equal(t, 3, metrics.TotalBookings)
	assert.Equal(t, 2, metrics.UniqueCustomers)
	assert.Equal(t, 150.0, metrics.TodayIncome)
	assert.Equal(t, 1, metrics.TodayCount)
	assert.Equal(t, 450.0, metrics.MonthIncome)
	assert.Equal(t, 2, metrics.MonthCount)
}
