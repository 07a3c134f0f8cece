package services

import (
	"database/sql"
	"fmt"
	"time"

	intconfig "meraai/internal/config"
	"meraai/internal/domain"
	"meraai/internal/domain/models"
	"meraai/internal/repositories"
	"meraai/internal/utils"
)

// BookingService owns the booking lifecycle: create, list, cancel, and the
// administrative hard deletes. Handlers validate input field-by-field; the
// service re-checks only the structural invariants and the time-dependent
// 48-hour rule, which must be evaluated against "now" at call time.
type BookingService struct {
	Repo      repositories.BookingRepository
	DB        *sql.DB
	RequestID string

	// Now and NewCode are injectable for tests.
	Now     func() time.Time
	NewCode func(bookingType string) string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) repo() repositories.BookingRepository {
	if s.Repo.DB != nil {
		return s.Repo
	}
	return repositories.BookingRepository{DB: s.db()}
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) newCode(bookingType string) string {
	if s.NewCode != nil {
		return s.NewCode(bookingType)
	}
	return utils.NewBookingCode(bookingType)
}

// Create persists a validated booking draft and returns it with its code
// and timestamps filled in.
func (s BookingService) Create(userID int64, draft models.Booking) (models.Booking, error) {
	if userID <= 0 {
		return models.Booking{}, domain.ValidationError{Field: "userId", Msg: "invalid user"}
	}
	draft.UserID = userID
	if err := draft.CheckShape(); err != nil {
		return models.Booking{}, err
	}

	now := s.now()
	draft.BookingCode = s.newCode(draft.Type)
	draft.Status = models.StatusConfirmed
	draft.CreatedAt = now
	draft.UpdatedAt = now

	if err := s.repo().Create(&draft); err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("code=%s type=%s user_id=%d passengers=%d", draft.BookingCode, draft.Type, userID, draft.Passengers))
	return draft, nil
}

// List returns all bookings owned by userID.
func (s BookingService) List(userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, domain.ValidationError{Field: "userId", Msg: "invalid user"}
	}
	out, err := s.repo().ListByUser(userID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// Get loads one booking and enforces ownership.
func (s BookingService) Get(userID int64, code string) (models.Booking, error) {
	b, err := s.repo().GetByCode(code)
	if err == sql.ErrNoRows {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if b.UserID != userID {
		return models.Booking{}, domain.ForbiddenError{Resource: "booking"}
	}
	return b, nil
}

// Cancel applies the 48-hour policy against current time and, when allowed,
// flips the booking to cancelled with a conditional update. Only confirmed
// bookings cancel; a second attempt on the same booking is rejected, not
// re-applied.
func (s BookingService) Cancel(userID int64, code string) error {
	b, err := s.Get(userID, code)
	if err != nil {
		return err
	}
	if b.Status != models.StatusConfirmed {
		return domain.ConflictError{Resource: "booking", Msg: "booking is not cancellable"}
	}

	now := s.now()
	hours, err := domain.HoursUntilDeparture(b.DepartureDate, now)
	if err != nil {
		return domain.InternalError{Msg: "stored departure date unreadable", Err: err}
	}
	if hours < domain.CancelWindowHours {
		utils.LogEvent(s.RequestID, "booking", "cancel_rejected",
			fmt.Sprintf("code=%s hours_until_departure=%d", code, hours))
		return domain.PolicyError{
			Code:                domain.CodePolicy48Hour,
			Msg:                 fmt.Sprintf("cancellation closes %d hours before departure", domain.CancelWindowHours),
			HoursUntilDeparture: hours,
		}
	}

	done, err := s.repo().CancelConfirmed(code, userID, now)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !done {
		// Lost the race against a concurrent cancel.
		return domain.ConflictError{Resource: "booking", Msg: "booking is not cancellable"}
	}

	utils.LogEvent(s.RequestID, "booking", "cancel", fmt.Sprintf("code=%s user_id=%d", code, userID))
	return nil
}

// AdminDelete hard-deletes one booking regardless of status or the
// cancellation window.
func (s BookingService) AdminDelete(code string) error {
	done, err := s.repo().DeleteByCode(code)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !done {
		return domain.NotFoundError{Resource: "booking"}
	}
	utils.LogEvent(s.RequestID, "booking", "admin_delete", "code="+code)
	return nil
}

// AdminClearAll wipes every booking. Returns the number removed.
func (s BookingService) AdminClearAll() (int64, error) {
	n, err := s.repo().ClearAll()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "admin_clear_all", fmt.Sprintf("removed=%d", n))
	return n, nil
}
