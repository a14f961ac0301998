package m_order_line

import (
	"cloud.google.com/go/spanner"
)

// Field name constants for the order_lines table (interleaved in orders).
const (
	TableName = "order_lines"

	OrderID              = "order_id"
	LineNo               = "line_no"
	ProductID            = "product_id"
	ProductName          = "product_name"
	Quantity             = "quantity"
	UnitPriceNumerator   = "unit_price_numerator"
	UnitPriceDenominator = "unit_price_denominator"
)

// Columns lists every column in Data order.
var Columns = []string{
	OrderID,
	LineNo,
	ProductID,
	ProductName,
	Quantity,
	UnitPriceNumerator,
	UnitPriceDenominator,
}

// Data is a snapshot of one purchased product.
type Data struct {
	OrderID              string `spanner:"order_id"`
	LineNo               int64  `spanner:"line_no"`
	ProductID            string `spanner:"product_id"`
	ProductName          string `spanner:"product_name"`
	Quantity             int64  `spanner:"quantity"`
	UnitPriceNumerator   int64  `spanner:"unit_price_numerator"`
	UnitPriceDenominator int64  `spanner:"unit_price_denominator"`
}

// Model provides type-safe operations on the order_lines table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting an order line.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	mut, _ := spanner.InsertStruct(TableName, data)
	return mut
}
