package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the application schema when it does not exist yet and
// seeds the rows the site cannot run without: the two daily services for
// every weekday and the singleton restaurant_settings row.  Every statement
// is idempotent so the function can run on each startup.
//
// The composite index on reservations (reservation_date, reservation_time,
// service_id) is load-bearing: the capacity check locks that index range
// with SELECT ... FOR UPDATE, and InnoDB next-key locking on it is what
// serialises two concurrent bookings of the same slot.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			access_level ENUM('admin','user') NOT NULL DEFAULT 'user',
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_accounts_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			account_id BIGINT UNSIGNED NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			default_guests INT UNSIGNED NOT NULL DEFAULT 2,
			allergies TEXT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_account (account_id),
			CONSTRAINT fk_users_account FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			account_id BIGINT UNSIGNED NOT NULL,
			token_hash CHAR(64) NOT NULL,
			expires_at DATETIME NOT NULL,
			revoked_at DATETIME NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_refresh_hash (token_hash),
			KEY idx_refresh_account (account_id),
			CONSTRAINT fk_refresh_account FOREIGN KEY (account_id) REFERENCES accounts(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS services (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(50) NOT NULL,
			day_of_week TINYINT UNSIGNED NOT NULL,
			start_time CHAR(5) NOT NULL,
			end_time CHAR(5) NOT NULL,
			UNIQUE KEY uq_services_name_day (name, day_of_week)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS restaurant_settings (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			max_capacity INT UNSIGNED NOT NULL DEFAULT 100
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS reservations (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			service_id BIGINT UNSIGNED NOT NULL,
			reservation_date CHAR(10) NOT NULL,
			reservation_time CHAR(5) NOT NULL,
			number_of_people INT UNSIGNED NOT NULL,
			allergies TEXT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			KEY idx_reservations_slot (reservation_date, reservation_time, service_id),
			KEY idx_reservations_user (user_id),
			CONSTRAINT fk_reservations_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			CONSTRAINT fk_reservations_service FOREIGN KEY (service_id) REFERENCES services(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(100) NOT NULL,
			UNIQUE KEY uq_categories_title (title)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS dishes (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			category_id BIGINT UNSIGNED NOT NULL,
			title VARCHAR(150) NOT NULL,
			description TEXT NULL,
			price DECIMAL(8,2) NOT NULL DEFAULT 0,
			CONSTRAINT fk_dishes_category FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS gallery_images (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(150) NOT NULL,
			image_url VARCHAR(500) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if err := seedServices(ctx, db); err != nil {
		return err
	}
	return seedSettings(ctx, db)
}

// seedServices inserts the default lunch and dinner windows for every
// weekday when the catalog is empty.  Admins adjust individual rows later
// through the settings endpoints; the seed never overwrites existing rows.
func seedServices(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&n); err != nil {
		return fmt.Errorf("seed services: %w", err)
	}
	if n > 0 {
		return nil
	}
	defaults := []struct {
		name       string
		start, end string
	}{
		{"lunch", "12:00", "14:00"},
		{"dinner", "19:00", "21:30"},
	}
	for _, svc := range defaults {
		for day := 0; day < 7; day++ {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO services (name, day_of_week, start_time, end_time) VALUES (?, ?, ?, ?)`,
				svc.name, day, svc.start, svc.end); err != nil {
				return fmt.Errorf("seed services: %w", err)
			}
		}
	}
	return nil
}

// seedSettings guarantees the singleton restaurant_settings row exists with
// the default ceiling of 100 covers.
func seedSettings(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurant_settings`).Scan(&n); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO restaurant_settings (max_capacity) VALUES (100)`); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}
