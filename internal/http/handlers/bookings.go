package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"time"

	"meraai/internal/domain"
	"meraai/internal/domain/models"
	"meraai/internal/http/middleware"
	"meraai/internal/services"
	"meraai/internal/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler binds the booking lifecycle service to HTTP. A fresh
// service value is built per request so log lines carry the request id.
type BookingHandler struct{}

func (BookingHandler) service(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c)}
}

type createBookingRequest struct {
	Type          string                `json:"type"`
	From          string                `json:"from"`
	To            string                `json:"to"`
	DepartureDate string                `json:"departureDate"`
	ReturnDate    string                `json:"returnDate"`
	Passengers    int                   `json:"passengers"`
	TotalPrice    inrAmount             `json:"totalPrice"`
	Details       models.BookingDetails `json:"bookingDetails"`
	PassengerList []models.Passenger    `json:"passengersList"`
}

// inrAmount takes a totalPrice as either a plain JSON number or a formatted
// string like "Rs 5,000". The mobile client sends numbers; imports from the
// legacy site send display strings.
type inrAmount int64

func (a *inrAmount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := utils.ParseINRToInt(s)
		if err != nil {
			return err
		}
		*a = inrAmount(v)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = inrAmount(math.Round(n))
	return nil
}

// validate runs every rule that applies to the requested travel type.
// Returns the first failure.
func (r createBookingRequest) validate(now time.Time) domain.RuleResult {
	if !models.ValidBookingType(r.Type) {
		return domain.RuleResult{Code: "invalid_type", Msg: "type must be train, bus, flight or hotel"}
	}
	if res := domain.ValidateFutureDate(r.DepartureDate, now); !res.Valid {
		return res
	}
	if res := domain.ValidateAdvanceBooking(r.DepartureDate, r.Type, now); !res.Valid {
		return res
	}
	if strings.TrimSpace(r.ReturnDate) != "" {
		if res := domain.ValidateDateRange(r.DepartureDate, r.ReturnDate); !res.Valid {
			return res
		}
	}
	if strings.ToLower(strings.TrimSpace(r.Type)) == domain.TypeHotel {
		if res := domain.ValidateGuestCount(r.Passengers); !res.Valid {
			return res
		}
	} else {
		if res := domain.ValidatePassengerCount(r.Passengers); !res.Valid {
			return res
		}
	}
	return domain.RuleResult{Valid: true}
}

// POST /api/bookings
func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if res := req.validate(time.Now()); !res.Valid {
		respondError(c, http.StatusBadRequest, res.Code, res.Msg, nil)
		return
	}

	draft := models.Booking{
		Type:          strings.ToLower(strings.TrimSpace(req.Type)),
		From:          strings.TrimSpace(req.From),
		To:            strings.TrimSpace(req.To),
		DepartureDate: strings.TrimSpace(req.DepartureDate),
		ReturnDate:    strings.TrimSpace(req.ReturnDate),
		Passengers:    req.Passengers,
		TotalPrice:    int64(req.TotalPrice),
		Details:       req.Details,
		PassengerList: req.PassengerList,
	}

	booking, err := h.service(c).Create(middleware.GetUserID(c), draft)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bookingId": booking.BookingCode})
}

// GET /api/bookings
func (h BookingHandler) List(c *gin.Context) {
	bookings, err := h.service(c).List(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:code
func (h BookingHandler) Get(c *gin.Context) {
	booking, err := h.service(c).Get(middleware.GetUserID(c), c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// DELETE /api/bookings/:code
func (h BookingHandler) Cancel(c *gin.Context) {
	if err := h.service(c).Cancel(middleware.GetUserID(c), c.Param("code")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/bookings/:code/ticket
func (h BookingHandler) Ticket(c *gin.Context) {
	svc := services.TicketService{
		Booking:   h.service(c),
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateTicket(middleware.GetUserID(c), c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
