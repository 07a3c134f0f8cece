package repositories

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates all tables when missing. Idempotent, runs on every
// startup so a fresh database bootstraps itself.
func EnsureSchema(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("db not available")
	}
	ddl := []string{`
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(100) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(16) NOT NULL DEFAULT 'user',
	status VARCHAR(16) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`, `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_code VARCHAR(32) NOT NULL,
	user_id BIGINT NOT NULL,
	type VARCHAR(16) NOT NULL,
	route_from VARCHAR(255) NOT NULL,
	route_to VARCHAR(255) NOT NULL,
	departure_date VARCHAR(10) NOT NULL,
	return_date VARCHAR(10) NOT NULL DEFAULT '',
	passenger_count INT NOT NULL DEFAULT 1,
	status VARCHAR(16) NOT NULL DEFAULT 'confirmed',
	total_price BIGINT NOT NULL DEFAULT 0,
	details JSON NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE KEY uniq_booking_code (booking_code),
	KEY idx_user (user_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`, `
CREATE TABLE IF NOT EXISTS booking_passengers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id BIGINT NOT NULL,
	position INT NOT NULL,
	passenger_name VARCHAR(255) NOT NULL,
	passenger_email VARCHAR(255) NOT NULL DEFAULT '',
	passenger_phone VARCHAR(100) NOT NULL DEFAULT '',
	passenger_age INT NOT NULL,
	UNIQUE KEY uniq_booking_position (booking_id, position),
	KEY idx_booking (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
