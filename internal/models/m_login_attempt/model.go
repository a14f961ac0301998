package m_login_attempt

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Field name constants for the login_attempts table.
const (
	TableName = "login_attempts"

	UserID       = "user_id"
	FailureCount = "failure_count"
	LockedUntil  = "locked_until"
	UpdatedAt    = "updated_at"
)

// Columns lists the columns read back into Data.
var Columns = []string{UserID, FailureCount, LockedUntil, UpdatedAt}

// Data represents one account's throttle state.
type Data struct {
	UserID       string           `spanner:"user_id"`
	FailureCount int64            `spanner:"failure_count"`
	LockedUntil  spanner.NullTime `spanner:"locked_until"`
	UpdatedAt    time.Time        `spanner:"updated_at"`
}

// Model provides type-safe operations on the login_attempts table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut writes the full throttle state for a user.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(TableName, Columns, []interface{}{
		data.UserID,
		data.FailureCount,
		data.LockedUntil,
		spanner.CommitTimestamp,
	})
}
