package services

import (
	"bytes"
	"fmt"
	"strings"

	"meraai/internal/domain"
	"meraai/internal/domain/models"
	"meraai/internal/utils"

	"github.com/phpdave11/gofpdf"
)

const ticketTerms = "Terms of service: this ticket is valid only for the passengers listed above. " +
	"Carry a government-issued photo ID matching the primary contact. Cancellation is " +
	"permitted up to 48 hours before departure; no refunds inside that window. " +
	"MeraAi acts as a booking agent and is not liable for carrier delays."

// TicketService renders a booking record into a downloadable PDF ticket.
// Rendering is a pure projection of the record; nothing is fetched or
// mutated.
type TicketService struct {
	Booking   BookingService
	RequestID string

	// Loader overrides booking lookup in tests.
	Loader func(userID int64, code string) (models.Booking, error)
}

func (s TicketService) load(userID int64, code string) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(userID, code)
	}
	return s.Booking.Get(userID, code)
}

// GenerateTicket returns PDF bytes and a download filename for the booking,
// enforcing ownership through the lifecycle service.
func (s TicketService) GenerateTicket(userID int64, code string) ([]byte, string, error) {
	b, err := s.load(userID, code)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate", "code="+b.BookingCode)
	return buildTicketPDF(b)
}

func buildTicketPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("MeraAi Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "MERAAI E-TICKET")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, strings.ToUpper(safe(b.Type, "BOOKING"))+" | "+strings.ToUpper(safe(b.Status, "-")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID     : %s", safe(b.BookingCode, "-")),
	}
	if b.Type == domain.TypeHotel {
		lines = append(lines,
			fmt.Sprintf("Guest Address  : %s", safe(b.From, "-")),
			fmt.Sprintf("Hotel          : %s", safe(b.To, "-")),
			fmt.Sprintf("Check-in       : %s", safe(b.DepartureDate, "-")),
		)
		if strings.TrimSpace(b.ReturnDate) != "" {
			lines = append(lines, fmt.Sprintf("Check-out      : %s", b.ReturnDate))
			if nights, err := domain.CalculateNights(b.DepartureDate, b.ReturnDate); err == nil {
				lines = append(lines, fmt.Sprintf("Nights         : %d", nights))
			}
		}
	} else {
		lines = append(lines,
			fmt.Sprintf("Route          : %s -> %s", safe(b.From, "-"), safe(b.To, "-")),
			fmt.Sprintf("Departure      : %s", safe(b.DepartureDate, "-")),
		)
		if strings.TrimSpace(b.ReturnDate) != "" {
			lines = append(lines, fmt.Sprintf("Return         : %s", b.ReturnDate))
		}
	}
	lines = append(lines, detailLines(b.Details)...)
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Passengers (%d)", len(b.PassengerList)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	// One row per passenger; the page grows as needed, entries never overlap.
	for i, p := range b.PassengerList {
		pdf.Cell(0, 6, fmt.Sprintf("%d. %s (age %d)", i+1, safe(p.Name, "-"), p.Age))
		pdf.Ln(6)
	}
	contact := b.PrimaryContact()
	pdf.Ln(2)
	pdf.Cell(0, 6, "Contact: "+safe(contact.Email, "-")+" / "+safe(contact.Phone, "-"))
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatINR(b.TotalPrice))
	pdf.Ln(11)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, ticketTerms, "", "", false)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Verified booking %s - issued %s", safe(b.BookingCode, "-"), utils.FormatDate(b.CreatedAt)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TICKET_%s.pdf", utils.SafeFilenamePart(b.BookingCode))
	return buf.Bytes(), filename, nil
}

func detailLines(d models.BookingDetails) []string {
	switch {
	case d.Flight != nil:
		out := []string{
			fmt.Sprintf("Airline        : %s", safe(d.Flight.Airline, "-")),
			fmt.Sprintf("Flight No.     : %s", safe(d.Flight.FlightNumber, "-")),
		}
		if d.Flight.DepartureTime != "" || d.Flight.ArrivalTime != "" {
			out = append(out, fmt.Sprintf("Timing         : %s - %s",
				safe(d.Flight.DepartureTime, "-"), safe(d.Flight.ArrivalTime, "-")))
		}
		if d.Flight.Duration != "" {
			out = append(out, fmt.Sprintf("Duration       : %s", d.Flight.Duration))
		}
		return out
	case d.Transit != nil:
		out := []string{fmt.Sprintf("Operator       : %s", safe(d.Transit.Operator, "-"))}
		if d.Transit.DepartureTime != "" || d.Transit.ArrivalTime != "" {
			out = append(out, fmt.Sprintf("Timing         : %s - %s",
				safe(d.Transit.DepartureTime, "-"), safe(d.Transit.ArrivalTime, "-")))
		}
		if d.Transit.Duration != "" {
			out = append(out, fmt.Sprintf("Duration       : %s", d.Transit.Duration))
		}
		return out
	case d.Hotel != nil:
		return []string{
			fmt.Sprintf("Property       : %s", safe(d.Hotel.HotelName, "-")),
			fmt.Sprintf("Room Type      : %s", safe(d.Hotel.RoomType, "-")),
		}
	}
	return nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
