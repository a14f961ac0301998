package m_order

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the orders table.
type Data struct {
	OrderID          string             `spanner:"order_id"`
	UserID           string             `spanner:"user_id"`
	TotalNumerator   int64              `spanner:"total_numerator"`
	TotalDenominator int64              `spanner:"total_denominator"`
	Status           string             `spanner:"status"`
	CreatedBy        spanner.NullString `spanner:"created_by"`
	CreatedAt        time.Time          `spanner:"created_at"`
}

// Model provides type-safe operations on the orders table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting an order.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.OrderID,
		data.UserID,
		data.TotalNumerator,
		data.TotalDenominator,
		data.Status,
		data.CreatedBy,
		data.CreatedAt,
	})
}
