package domain

import (
	"fmt"
	"strings"
	"time"

	"meraai/internal/utils"
)

// Booking types supported by the rules below.
const (
	TypeTrain  = "train"
	TypeBus    = "bus"
	TypeFlight = "flight"
	TypeHotel  = "hotel"
)

const (
	MinPassengers = 1
	MaxPassengers = 9
	// CancelWindowHours is the minimum lead time before departure for a
	// booking to still be cancellable.
	CancelWindowHours = 48
)

// RuleResult is the outcome of a single validation rule. Rules never return
// Go errors for user mistakes; the caller surfaces Msg directly.
type RuleResult struct {
	Valid bool   `json:"isValid"`
	Code  string `json:"code,omitempty"`
	Msg   string `json:"error,omitempty"`
}

func ok() RuleResult { return RuleResult{Valid: true} }

func fail(code, msg string) RuleResult {
	return RuleResult{Valid: false, Code: code, Msg: msg}
}

// Rule failure codes.
const (
	CodeInvalidDate          = "invalid_date"
	CodeAdvanceBookingTooFar = "advance_booking_too_far"
	CodeInvalidRange         = "invalid_range"
	CodeOutOfBounds          = "out_of_bounds"
	CodePolicy48Hour         = "48_hour_policy"
)

// ValidateFutureDate rejects dates before today. The comparison is
// date-only; a booking for later today is acceptable.
func ValidateFutureDate(dateStr string, now time.Time) RuleResult {
	d, err := utils.ParseDate(dateStr)
	if err != nil {
		return fail(CodeInvalidDate, "date must be YYYY-MM-DD")
	}
	if d.Before(utils.Midnight(now)) {
		return fail(CodeInvalidDate, "date cannot be in the past")
	}
	return ok()
}

// AdvanceBookingCeiling returns the latest bookable date for a travel type.
// Rail and bus reservations open two months out; flights and hotels a year.
func AdvanceBookingCeiling(travelType string, now time.Time) time.Time {
	base := utils.Midnight(now)
	switch strings.ToLower(strings.TrimSpace(travelType)) {
	case TypeTrain, TypeBus:
		return base.AddDate(0, 2, 0)
	default:
		return base.AddDate(1, 0, 0)
	}
}

// ValidateAdvanceBooking rejects dates past the type-specific ceiling. The
// ceiling itself is bookable; the day after is not.
func ValidateAdvanceBooking(dateStr, travelType string, now time.Time) RuleResult {
	d, err := utils.ParseDate(dateStr)
	if err != nil {
		return fail(CodeInvalidDate, "date must be YYYY-MM-DD")
	}
	ceiling := AdvanceBookingCeiling(travelType, now)
	if d.After(ceiling) {
		horizon := "1 year"
		switch strings.ToLower(strings.TrimSpace(travelType)) {
		case TypeTrain, TypeBus:
			horizon = "2 months"
		}
		return fail(CodeAdvanceBookingTooFar,
			fmt.Sprintf("%s bookings open at most %s in advance", travelType, horizon))
	}
	return ok()
}

// ValidateDateRange requires check-out strictly after check-in.
func ValidateDateRange(checkIn, checkOut string) RuleResult {
	in, err := utils.ParseDate(checkIn)
	if err != nil {
		return fail(CodeInvalidDate, "check-in must be YYYY-MM-DD")
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		return fail(CodeInvalidDate, "check-out must be YYYY-MM-DD")
	}
	if !out.After(in) {
		return fail(CodeInvalidRange, "check-out must be after check-in")
	}
	return ok()
}

// ValidatePassengerCount bounds group size for transit bookings.
func ValidatePassengerCount(n int) RuleResult {
	if n < MinPassengers || n > MaxPassengers {
		return fail(CodeOutOfBounds,
			fmt.Sprintf("passenger count must be between %d and %d", MinPassengers, MaxPassengers))
	}
	return ok()
}

// ValidateGuestCount bounds guest count for hotel bookings. Same bounds as
// passengers, kept separate so hotel callers read naturally.
func ValidateGuestCount(n int) RuleResult {
	if n < MinPassengers || n > MaxPassengers {
		return fail(CodeOutOfBounds,
			fmt.Sprintf("guest count must be between %d and %d", MinPassengers, MaxPassengers))
	}
	return ok()
}

// CalculateNights returns the number of nights between check-in and
// check-out, at least 1 for any valid range.
func CalculateNights(checkIn, checkOut string) (int, error) {
	in, err := utils.ParseDate(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		return 0, err
	}
	nights := utils.DaysBetween(in, out)
	if nights < 1 {
		nights = 1
	}
	return nights, nil
}

// HoursUntilDeparture computes the lead time in whole hours between now and
// the departure date taken at local midnight (check-in date for hotels).
func HoursUntilDeparture(departureDate string, now time.Time) (int, error) {
	d, err := utils.ParseDate(departureDate)
	if err != nil {
		return 0, err
	}
	return utils.HoursUntil(utils.Midnight(d), now), nil
}
