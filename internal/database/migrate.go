package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates the application tables when they do not exist yet.
// Statements are idempotent so the server can run them on every boot.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(32) NOT NULL DEFAULT 'ADMIN',
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			user_id BIGINT UNSIGNED NOT NULL,
			token_hash CHAR(64) NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			revoked_at TIMESTAMP NULL DEFAULT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_refresh_tokens_hash (token_hash),
			CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users (id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS students (
			roll_no VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			course VARCHAR(128) NOT NULL,
			semester VARCHAR(32) NOT NULL,
			email VARCHAR(255) NOT NULL,
			subject_code VARCHAR(64) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (roll_no),
			KEY idx_students_subject (subject_code)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS rooms (
			room_no VARCHAR(64) NOT NULL,
			building VARCHAR(128) NOT NULL,
			seat_rows INT NOT NULL,
			seat_cols INT NOT NULL,
			capacity INT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (room_no)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS seating_allocations (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			roll_no VARCHAR(64) NOT NULL,
			room_no VARCHAR(64) NOT NULL,
			row_num INT NOT NULL,
			col_num INT NOT NULL,
			seat_number VARCHAR(96) NOT NULL,
			allocation_method VARCHAR(32) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			UNIQUE KEY uq_alloc_roll (roll_no),
			UNIQUE KEY uq_alloc_seat (room_no, row_num, col_num),
			CONSTRAINT fk_alloc_student FOREIGN KEY (roll_no) REFERENCES students (roll_no),
			CONSTRAINT fk_alloc_room FOREIGN KEY (room_no) REFERENCES rooms (room_no)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS activity_log (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
			activity_type VARCHAR(64) NOT NULL,
			description TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (id),
			KEY idx_activity_created (created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
