package db

import "database/sql"

// Monetary columns hold integer KES cents. The unique keys on
// passenger_trips and payments plus the credits check are load-bearing:
// the booking flow relies on them as the final word against double
// submits and negative balances.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		user_type VARCHAR(30) NOT NULL DEFAULT 'passenger',
		credits BIGINT NOT NULL DEFAULT 0,
		status VARCHAR(30) NOT NULL DEFAULT 'active',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_users_email (email),
		CONSTRAINT chk_users_credits CHECK (credits >= 0)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS saccos (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		phone VARCHAR(50) NOT NULL DEFAULT '',
		email VARCHAR(255) NOT NULL DEFAULT '',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_saccos_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS matatus (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		plate_number VARCHAR(20) NOT NULL,
		sacco_id BIGINT NOT NULL,
		capacity INT NOT NULL,
		model VARCHAR(100) NOT NULL DEFAULT '',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_matatus_plate (plate_number),
		KEY idx_matatus_sacco (sacco_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS routes (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		sacco_id BIGINT NOT NULL,
		start_point VARCHAR(255) NOT NULL,
		end_point VARCHAR(255) NOT NULL,
		standard_fare BIGINT NOT NULL DEFAULT 0,
		distance_km DOUBLE NOT NULL DEFAULT 0,
		estimated_duration_minutes INT NOT NULL DEFAULT 0,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_routes_sacco (sacco_id),
		CONSTRAINT chk_routes_fare CHECK (standard_fare >= 0)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS trips (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		route_id BIGINT NOT NULL,
		matatu_id BIGINT NOT NULL,
		driver_id BIGINT NULL,
		conductor_id BIGINT NULL,
		scheduled_departure DATETIME NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		KEY idx_trips_route (route_id),
		KEY idx_trips_departure (scheduled_departure)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS passenger_trips (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		passenger_id BIGINT NOT NULL,
		trip_id BIGINT NOT NULL,
		boarding_stop VARCHAR(255) NOT NULL,
		alighting_stop VARCHAR(255) NOT NULL,
		fare_paid BIGINT NOT NULL,
		payment_method VARCHAR(30) NOT NULL DEFAULT 'credits',
		is_paid TINYINT(1) NOT NULL DEFAULT 0,
		transaction_time TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_passenger_trip (passenger_id, trip_id),
		KEY idx_passenger_trips_trip (trip_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS payments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		passenger_id BIGINT NOT NULL,
		payment_type VARCHAR(30) NOT NULL,
		amount BIGINT NOT NULL,
		transaction_id VARCHAR(64) NOT NULL,
		payment_method VARCHAR(30) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		description VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		completed_at DATETIME NULL,
		UNIQUE KEY uniq_payments_txn (transaction_id),
		KEY idx_payments_passenger (passenger_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

// EnsureSchema creates missing tables and applies the column migrations
// older installs need. Safe to run on every start.
func EnsureSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}

	// Installs that predate the audit log's completed_at column.
	if HasTable(db, "payments") && !HasColumn(db, "payments", "completed_at") {
		if _, err := db.Exec(`ALTER TABLE payments ADD COLUMN completed_at DATETIME NULL`); err != nil {
			return err
		}
	}
	return nil
}
