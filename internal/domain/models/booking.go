package models

import (
	"strings"
	"time"

	"meraai/internal/domain"
)

// Booking statuses. A booking is created confirmed; pending is reserved for
// a future payment step.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Passenger is one traveler attached to a booking. The first passenger on a
// booking is the primary contact and must carry email and phone.
type Passenger struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Age   int    `json:"age"`
}

// FlightDetails describes the flight leg of a flight booking.
type FlightDetails struct {
	Airline       string `json:"airline"`
	FlightNumber  string `json:"flightNumber"`
	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	Duration      string `json:"duration,omitempty"`
}

// TransitDetails describes a train or bus service.
type TransitDetails struct {
	Operator      string `json:"operator"`
	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	Duration      string `json:"duration,omitempty"`
}

// HotelDetails describes a hotel stay.
type HotelDetails struct {
	HotelName string `json:"hotelName"`
	RoomType  string `json:"roomType"`
}

// BookingDetails is a tagged union keyed by the booking's type: exactly one
// arm may be set, and it must match the type.
type BookingDetails struct {
	Flight  *FlightDetails  `json:"flight,omitempty"`
	Transit *TransitDetails `json:"transit,omitempty"`
	Hotel   *HotelDetails   `json:"hotel,omitempty"`
}

// Validate checks that the populated arm matches bookingType. Empty details
// are tolerated (legacy records carry none).
func (d BookingDetails) Validate(bookingType string) error {
	set := 0
	if d.Flight != nil {
		set++
	}
	if d.Transit != nil {
		set++
	}
	if d.Hotel != nil {
		set++
	}
	if set == 0 {
		return nil
	}
	if set > 1 {
		return domain.ValidationError{Field: "bookingDetails", Msg: "more than one detail variant set"}
	}
	switch strings.ToLower(strings.TrimSpace(bookingType)) {
	case domain.TypeFlight:
		if d.Flight == nil {
			return domain.ValidationError{Field: "bookingDetails", Msg: "flight booking requires flight details"}
		}
	case domain.TypeTrain, domain.TypeBus:
		if d.Transit == nil {
			return domain.ValidationError{Field: "bookingDetails", Msg: "transit booking requires operator details"}
		}
	case domain.TypeHotel:
		if d.Hotel == nil {
			return domain.ValidationError{Field: "bookingDetails", Msg: "hotel booking requires hotel details"}
		}
	}
	return nil
}

// Booking is one reservation for a travel product. For hotels, From holds
// the guest address and To the hotel name; the overload is inherited from
// the public API contract and kept as-is.
type Booking struct {
	ID            int64          `json:"-"`
	BookingCode   string         `json:"bookingId"`
	UserID        int64          `json:"userId"`
	Type          string         `json:"type"`
	From          string         `json:"from"`
	To            string         `json:"to"`
	DepartureDate string         `json:"departureDate"`
	ReturnDate    string         `json:"returnDate,omitempty"`
	Passengers    int            `json:"passengers"`
	PassengerList []Passenger    `json:"passengersList"`
	Status        string         `json:"status"`
	TotalPrice    int64          `json:"totalPrice"`
	Details       BookingDetails `json:"bookingDetails"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// PrimaryContact returns the first passenger. Callers must have validated
// the list is non-empty.
func (b Booking) PrimaryContact() Passenger {
	if len(b.PassengerList) == 0 {
		return Passenger{}
	}
	return b.PassengerList[0]
}

// ValidBookingType reports whether t is one of the supported products.
func ValidBookingType(t string) bool {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case domain.TypeTrain, domain.TypeBus, domain.TypeFlight, domain.TypeHotel:
		return true
	}
	return false
}

// CheckShape enforces the structural invariants of a booking record before
// it is persisted: a non-empty passenger list whose length matches the
// declared count, a primary contact with name, age and contact details, and
// detail fields matching the booking type. Used by the service as defense
// in depth; handlers validate field-by-field at the boundary.
func (b Booking) CheckShape() error {
	if !ValidBookingType(b.Type) {
		return domain.ValidationError{Field: "type", Msg: "unknown booking type"}
	}
	if strings.TrimSpace(b.From) == "" || strings.TrimSpace(b.To) == "" {
		return domain.ValidationError{Field: "route", Msg: "from and to are required"}
	}
	if len(b.PassengerList) == 0 {
		return domain.ValidationError{Field: "passengersList", Msg: "at least one passenger required"}
	}
	if b.Passengers != len(b.PassengerList) {
		return domain.ValidationError{Field: "passengers", Msg: "count does not match passenger list"}
	}
	for i, p := range b.PassengerList {
		if strings.TrimSpace(p.Name) == "" {
			return domain.ValidationError{Field: "passengersList", Msg: "passenger name required"}
		}
		if p.Age < 1 {
			return domain.ValidationError{Field: "passengersList", Msg: "passenger age required"}
		}
		if i == 0 {
			if strings.TrimSpace(p.Email) == "" {
				return domain.ValidationError{Field: "passengersList", Msg: "primary contact email required"}
			}
			if strings.TrimSpace(p.Phone) == "" {
				return domain.ValidationError{Field: "passengersList", Msg: "primary contact phone required"}
			}
		}
	}
	if b.TotalPrice < 0 {
		return domain.ValidationError{Field: "totalPrice", Msg: "price cannot be negative"}
	}
	return b.Details.Validate(b.Type)
}
