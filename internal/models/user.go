package models

import (
	"database/sql"
	"time"
)

// User mirrors one row of the users table.
type User struct {
	UserID        string         `db:"user_id"`
	Username      string         `db:"username"`
	Name          string         `db:"name"`
	PasswordHash  string         `db:"password_hash"`
	GoogleSubject sql.NullString `db:"google_subject"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
