package m_price_history

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a price history record. A null new price records a
// price being cleared.
type Data struct {
	HistoryID           string             `spanner:"history_id"`
	ProductID           string             `spanner:"product_id"`
	OldPriceNumerator   spanner.NullInt64  `spanner:"old_price_numerator"`
	OldPriceDenominator spanner.NullInt64  `spanner:"old_price_denominator"`
	NewPriceNumerator   spanner.NullInt64  `spanner:"new_price_numerator"`
	NewPriceDenominator spanner.NullInt64  `spanner:"new_price_denominator"`
	ChangedBy           spanner.NullString `spanner:"changed_by"`
	ChangedAt           time.Time          `spanner:"changed_at"`
}

// Model provides type-safe database operations for price history.
type Model struct{}

// NewModel creates a new price history model.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a price history record.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, m.ReadColumns(), []interface{}{
		data.HistoryID,
		data.ProductID,
		data.OldPriceNumerator,
		data.OldPriceDenominator,
		data.NewPriceNumerator,
		data.NewPriceDenominator,
		data.ChangedBy,
		spanner.CommitTimestamp,
	})
}

// ReadColumns returns the column names for reading price history.
func (m *Model) ReadColumns() []string {
	return []string{
		HistoryID,
		ProductID,
		OldPriceNumerator,
		OldPriceDenominator,
		NewPriceNumerator,
		NewPriceDenominator,
		ChangedBy,
		ChangedAt,
	}
}
