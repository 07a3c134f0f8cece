package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"meraai/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

// Create inserts the booking and its passenger list in one transaction; a
// failure on either leaves no record behind.
func (r BookingRepository) Create(b *models.Booking) error {
	details, err := json.Marshal(b.Details)
	if err != nil {
		return err
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO bookings
			(booking_code, user_id, type, route_from, route_to,
			 departure_date, return_date, passenger_count, status,
			 total_price, details, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		b.BookingCode, b.UserID, b.Type, b.From, b.To,
		b.DepartureDate, b.ReturnDate, b.Passengers, b.Status,
		b.TotalPrice, string(details), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, p := range b.PassengerList {
		if _, err := tx.Exec(`
			INSERT INTO booking_passengers
				(booking_id, position, passenger_name, passenger_email, passenger_phone, passenger_age)
			VALUES (?,?,?,?,?,?)
		`, id, i, p.Name, p.Email, p.Phone, p.Age); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	b.ID = id
	return nil
}

const bookingColumns = `
	id, booking_code, user_id, type,
	COALESCE(route_from,''), COALESCE(route_to,''),
	COALESCE(departure_date,''), COALESCE(return_date,''),
	COALESCE(passenger_count,0), COALESCE(status,''),
	COALESCE(total_price,0), COALESCE(details,'{}'),
	created_at, updated_at
`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var details string
	if err := row.Scan(
		&b.ID, &b.BookingCode, &b.UserID, &b.Type,
		&b.From, &b.To,
		&b.DepartureDate, &b.ReturnDate,
		&b.Passengers, &b.Status,
		&b.TotalPrice, &details,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	if strings.TrimSpace(details) != "" {
		_ = json.Unmarshal([]byte(details), &b.Details)
	}
	return b, nil
}

// GetByCode loads one booking with its passenger list.
func (r BookingRepository) GetByCode(code string) (models.Booking, error) {
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE booking_code=? LIMIT 1`, code)
	b, err := scanBooking(row)
	if err != nil {
		return models.Booking{}, err
	}
	passengers, err := r.listPassengers(b.ID)
	if err != nil {
		return models.Booking{}, err
	}
	b.PassengerList = passengers
	return b, nil
}

// ListByUser returns all bookings owned by userID, newest first.
func (r BookingRepository) ListByUser(userID int64) ([]models.Booking, error) {
	rows, err := r.DB.Query(`SELECT `+bookingColumns+` FROM bookings WHERE user_id=? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		passengers, err := r.listPassengers(out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].PassengerList = passengers
	}
	return out, nil
}

func (r BookingRepository) listPassengers(bookingID int64) ([]models.Passenger, error) {
	rows, err := r.DB.Query(`
		SELECT COALESCE(passenger_name,''), COALESCE(passenger_email,''),
		       COALESCE(passenger_phone,''), COALESCE(passenger_age,0)
		FROM booking_passengers
		WHERE booking_id=?
		ORDER BY position ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.Name, &p.Email, &p.Phone, &p.Age); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CancelConfirmed flips a confirmed booking owned by userID to cancelled.
// The status condition makes a concurrent double-cancel a no-op: the second
// update matches zero rows and the caller reports NotCancellable.
func (r BookingRepository) CancelConfirmed(code string, userID int64, now time.Time) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE bookings
		SET status=?, updated_at=?
		WHERE booking_code=? AND user_id=? AND status=?
	`, models.StatusCancelled, now, code, userID, models.StatusConfirmed)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByCode hard-deletes one booking and its passengers (admin only).
func (r BookingRepository) DeleteByCode(code string) (bool, error) {
	var id int64
	err := r.DB.QueryRow(`SELECT id FROM bookings WHERE booking_code=? LIMIT 1`, code).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM booking_passengers WHERE booking_id=?`, id); err != nil {
		return false, err
	}
	if _, err := tx.Exec(`DELETE FROM bookings WHERE id=?`, id); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

// ClearAll removes every booking (admin only). Returns rows removed.
func (r BookingRepository) ClearAll() (int64, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM booking_passengers`); err != nil {
		return 0, err
	}
	res, err := tx.Exec(`DELETE FROM bookings`)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, tx.Commit()
}
