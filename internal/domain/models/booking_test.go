package models

import (
	"testing"

	"meraai/internal/domain"
)

func validFlightBooking() Booking {
	return Booking{
		Type:          domain.TypeFlight,
		From:          "Delhi",
		To:            "Mumbai",
		DepartureDate: "2026-04-01",
		Passengers:    2,
		TotalPrice:    5000,
		PassengerList: []Passenger{
			{Name: "Asha Rao", Email: "asha@example.com", Phone: "9000000001", Age: 30},
			{Name: "Vik Rao", Age: 8},
		},
		Details: BookingDetails{Flight: &FlightDetails{Airline: "IndiGo", FlightNumber: "6E-204"}},
	}
}

func TestCheckShapeAcceptsValidBooking(t *testing.T) {
	if err := validFlightBooking().CheckShape(); err != nil {
		t.Fatalf("valid booking rejected: %v", err)
	}
}

func TestCheckShapeRejectsEmptyPassengerList(t *testing.T) {
	b := validFlightBooking()
	b.PassengerList = nil
	b.Passengers = 0
	if err := b.CheckShape(); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckShapeRejectsCountMismatch(t *testing.T) {
	b := validFlightBooking()
	b.Passengers = 3
	if err := b.CheckShape(); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCheckShapeRequiresPrimaryContactDetails(t *testing.T) {
	b := validFlightBooking()
	b.PassengerList[0].Email = ""
	if err := b.CheckShape(); !domain.IsValidation(err) {
		t.Fatalf("missing primary email should fail, got %v", err)
	}

	b = validFlightBooking()
	b.PassengerList[0].Phone = ""
	if err := b.CheckShape(); !domain.IsValidation(err) {
		t.Fatalf("missing primary phone should fail, got %v", err)
	}

	// Secondary passengers need no contact details.
	b = validFlightBooking()
	b.PassengerList[1].Email = ""
	b.PassengerList[1].Phone = ""
	if err := b.CheckShape(); err != nil {
		t.Fatalf("secondary passenger without contact details rejected: %v", err)
	}
}

func TestCheckShapeRejectsMissingNameOrAge(t *testing.T) {
	b := validFlightBooking()
	b.PassengerList[1].Name = " "
	if err := b.CheckShape(); !domain.IsValidation(err) {
		t.Fatalf("blank passenger name should fail, got %v", err)
	}

	b = validFlightBooking()
	b.PassengerList[1].Age = 0
	if err := b.CheckShape(); !domain.IsValidation(err) {
		t.Fatalf("zero age should fail, got %v", err)
	}
}

func TestDetailsMustMatchType(t *testing.T) {
	b := validFlightBooking()
	b.Details = BookingDetails{Hotel: &HotelDetails{HotelName: "Taj", RoomType: "Deluxe"}}
	if err := b.CheckShape(); !domain.IsValidation(err) {
		t.Fatalf("hotel details on a flight booking should fail, got %v", err)
	}

	b.Details = BookingDetails{
		Flight: &FlightDetails{Airline: "IndiGo"},
		Hotel:  &HotelDetails{HotelName: "Taj"},
	}
	if err := b.CheckShape(); !domain.IsValidation(err) {
		t.Fatalf("two detail variants should fail, got %v", err)
	}

	// Legacy records without details stay loadable.
	b = validFlightBooking()
	b.Details = BookingDetails{}
	if err := b.CheckShape(); err != nil {
		t.Fatalf("empty details should be tolerated: %v", err)
	}
}
