package m_cart

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Field name constants for the carts table.
const (
	TableName = "carts"

	CartID    = "cart_id"
	UserID    = "user_id"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

// UserIndex is the unique index enforcing one cart per user.
const UserIndex = "idx_carts_user"

// Data represents the database model for the carts table.
type Data struct {
	CartID    string    `spanner:"cart_id"`
	UserID    string    `spanner:"user_id"`
	CreatedAt time.Time `spanner:"created_at"`
	UpdatedAt time.Time `spanner:"updated_at"`
}

// Model provides type-safe operations on the carts table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a cart.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName,
		[]string{CartID, UserID, CreatedAt, UpdatedAt},
		[]interface{}{data.CartID, data.UserID, spanner.CommitTimestamp, spanner.CommitTimestamp},
	)
}

// TouchMut refreshes the cart's updated_at timestamp.
func (m *Model) TouchMut(cartID string) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{CartID, UpdatedAt},
		[]interface{}{cartID, spanner.CommitTimestamp},
	)
}
