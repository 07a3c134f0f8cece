package services

import (
	"testing"
	"time"

	"meraai/internal/domain"
	"meraai/internal/domain/models"
	"meraai/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	frozenNow  = time.Date(2026, 3, 16, 18, 0, 0, 0, time.Local)
	fixedCode  = "MR-FL-TEST0001"
	bookingCol = []string{
		"id", "booking_code", "user_id", "type", "route_from", "route_to",
		"departure_date", "return_date", "passenger_count", "status",
		"total_price", "details", "created_at", "updated_at",
	}
	passengerCol = []string{"passenger_name", "passenger_email", "passenger_phone", "passenger_age"}
)

func newTestService(t *testing.T) (BookingService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := BookingService{
		Repo:    repositories.BookingRepository{DB: db},
		DB:      db,
		Now:     func() time.Time { return frozenNow },
		NewCode: func(string) string { return fixedCode },
	}
	return svc, mock
}

func storedBookingRows(status, departureDate string) *sqlmock.Rows {
	return sqlmock.NewRows(bookingCol).AddRow(
		7, fixedCode, 42, "flight", "Delhi", "Mumbai",
		departureDate, "", 2, status,
		5000, `{"flight":{"airline":"IndiGo","flightNumber":"6E-204"}}`,
		frozenNow.Add(-24*time.Hour), frozenNow.Add(-24*time.Hour),
	)
}

func expectBookingLookup(mock sqlmock.Sqlmock, status, departureDate string) {
	mock.ExpectQuery("FROM bookings WHERE booking_code").
		WillReturnRows(storedBookingRows(status, departureDate))
	mock.ExpectQuery("FROM booking_passengers").
		WillReturnRows(sqlmock.NewRows(passengerCol).
			AddRow("Asha Rao", "asha@example.com", "9000000001", 30).
			AddRow("Vik Rao", "", "", 8))
}

func TestCreateFlightBookingWithTwoPassengers(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	draft := models.Booking{
		Type:          "flight",
		From:          "Delhi",
		To:            "Mumbai",
		DepartureDate: "2026-03-26", // 10 days out
		Passengers:    2,
		TotalPrice:    5000,
		Details:       models.BookingDetails{Flight: &models.FlightDetails{Airline: "IndiGo", FlightNumber: "6E-204"}},
		PassengerList: []models.Passenger{
			{Name: "Asha Rao", Email: "asha@example.com", Phone: "9000000001", Age: 30},
			{Name: "Vik Rao", Age: 8},
		},
	}

	created, err := svc.Create(42, draft)
	require.NoError(t, err)
	assert.Equal(t, fixedCode, created.BookingCode)
	assert.Equal(t, models.StatusConfirmed, created.Status)
	assert.Equal(t, frozenNow, created.CreatedAt)
	assert.Equal(t, frozenNow, created.UpdatedAt)
	assert.Equal(t, int64(42), created.UserID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsMalformedPassengerList(t *testing.T) {
	svc, mock := newTestService(t)

	draft := models.Booking{
		Type:          "flight",
		From:          "Delhi",
		To:            "Mumbai",
		DepartureDate: "2026-03-26",
		Passengers:    1,
		PassengerList: []models.Passenger{{Name: "", Age: 30}},
	}

	_, err := svc.Create(42, draft)
	assert.True(t, domain.IsValidation(err), "missing name should be a validation error, got %v", err)

	// Nothing may reach the database.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListReturnsOwnedBookings(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("FROM bookings WHERE user_id").
		WillReturnRows(storedBookingRows(models.StatusConfirmed, "2026-03-26"))
	mock.ExpectQuery("FROM booking_passengers").
		WillReturnRows(sqlmock.NewRows(passengerCol).
			AddRow("Asha Rao", "asha@example.com", "9000000001", 30).
			AddRow("Vik Rao", "", "", 8))

	bookings, err := svc.List(42)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, 2, bookings[0].Passengers)
	assert.Len(t, bookings[0].PassengerList, 2)
	assert.Equal(t, "Asha Rao", bookings[0].PrimaryContact().Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBeyondWindowSucceeds(t *testing.T) {
	svc, mock := newTestService(t)

	// Departure 2026-03-20 midnight is 78 hours from the frozen clock.
	expectBookingLookup(mock, models.StatusConfirmed, "2026-03-20")
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Cancel(42, fixedCode))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelInsideWindowRejectedWithHours(t *testing.T) {
	svc, mock := newTestService(t)

	// Departure 2026-03-18 midnight is 30 hours from the frozen clock.
	expectBookingLookup(mock, models.StatusConfirmed, "2026-03-18")

	err := svc.Cancel(42, fixedCode)
	require.Error(t, err)

	pe, ok := domain.AsPolicy(err)
	require.True(t, ok, "expected policy error, got %v", err)
	assert.Equal(t, domain.CodePolicy48Hour, pe.Code)
	assert.Equal(t, 30, pe.HoursUntilDeparture)

	// No UPDATE was expected: state must stay untouched.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelAlreadyCancelledIsRejected(t *testing.T) {
	svc, mock := newTestService(t)

	expectBookingLookup(mock, models.StatusCancelled, "2026-03-20")

	err := svc.Cancel(42, fixedCode)
	assert.True(t, domain.IsConflict(err), "expected conflict, got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelLosingRaceReportsConflict(t *testing.T) {
	svc, mock := newTestService(t)

	expectBookingLookup(mock, models.StatusConfirmed, "2026-03-20")
	// A concurrent cancel got there first: the conditional update matches
	// zero rows.
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Cancel(42, fixedCode)
	assert.True(t, domain.IsConflict(err), "expected conflict, got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelForeignBookingForbidden(t *testing.T) {
	svc, mock := newTestService(t)

	expectBookingLookup(mock, models.StatusConfirmed, "2026-03-20")

	err := svc.Cancel(99, fixedCode)
	assert.True(t, domain.IsForbidden(err), "expected forbidden, got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}
