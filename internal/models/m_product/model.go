package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a product.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.ProductID,
			data.Name,
			data.Description,
			data.PriceNumerator,
			data.PriceDenominator,
			data.Stock,
			data.CategoryID,
			data.ExpiresOn,
			data.Visible,
			data.Version,
			data.CreatedBy,
			data.UpdatedBy,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific product fields.
// UpdatedAt is always refreshed.
func (m *Model) UpdateMut(productID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	columns := make([]string, 0, len(updates)+2)
	values := make([]interface{}, 0, len(updates)+2)

	columns = append(columns, ProductID, UpdatedAt)
	values = append(values, productID, spanner.CommitTimestamp)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}

// StockMut writes a new stock level and version for a product.
func (m *Model) StockMut(productID string, stock, version int64) *spanner.Mutation {
	return m.UpdateMut(productID, map[string]interface{}{
		Stock:   stock,
		Version: version,
	})
}
