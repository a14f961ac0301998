package m_user

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the users table.
type Data struct {
	UserID       string             `spanner:"user_id"`
	Username     string             `spanner:"username"`
	Email        spanner.NullString `spanner:"email"`
	FullName     string             `spanner:"full_name"`
	PasswordHash string             `spanner:"password_hash"`
	Role         string             `spanner:"role"`
	Active       bool               `spanner:"active"`
	CreatedAt    time.Time          `spanner:"created_at"`
	UpdatedAt    time.Time          `spanner:"updated_at"`
}
