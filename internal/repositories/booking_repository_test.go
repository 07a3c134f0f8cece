package repositories

import (
	"fmt"
	"testing"
	"time"

	"meraai/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func testBooking() models.Booking {
	now := time.Date(2026, 3, 16, 12, 0, 0, 0, time.Local)
	return models.Booking{
		BookingCode:   "MR-FL-9F2A41C3",
		UserID:        42,
		Type:          "flight",
		From:          "Delhi",
		To:            "Mumbai",
		DepartureDate: "2026-03-26",
		Passengers:    2,
		Status:        models.StatusConfirmed,
		TotalPrice:    5000,
		PassengerList: []models.Passenger{
			{Name: "Asha Rao", Email: "asha@example.com", Phone: "9000000001", Age: 30},
			{Name: "Vik Rao", Age: 8},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateInsertsBookingAndPassengers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	b := testBooking()
	repo := BookingRepository{DB: db}
	if err := repo.Create(&b); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if b.ID != 7 {
		t.Fatalf("booking id not set from insert, got %d", b.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRollsBackOnPassengerInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").
		WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	b := testBooking()
	repo := BookingRepository{DB: db}
	if err := repo.Create(&b); err == nil {
		t.Fatalf("expected error when passenger insert fails")
	}
	if b.ID != 0 {
		t.Fatalf("failed create must not leave an id behind, got %d", b.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelConfirmedFlipsStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings").
		WithArgs(models.StatusCancelled, sqlmock.AnyArg(), "MR-FL-9F2A41C3", int64(42), models.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := BookingRepository{DB: db}
	done, err := repo.CancelConfirmed("MR-FL-9F2A41C3", 42, time.Now())
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if !done {
		t.Fatalf("cancel should report success when a row matched")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelConfirmedNoOpOnAlreadyCancelled(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Status condition matches no rows on a second cancel.
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := BookingRepository{DB: db}
	done, err := repo.CancelConfirmed("MR-FL-9F2A41C3", 42, time.Now())
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if done {
		t.Fatalf("second cancel must not report a state change")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
