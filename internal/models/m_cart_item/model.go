package m_cart_item

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the cart_items table.
type Data struct {
	ItemID    string    `spanner:"item_id"`
	CartID    string    `spanner:"cart_id"`
	ProductID string    `spanner:"product_id"`
	Quantity  int64     `spanner:"quantity"`
	AddedAt   time.Time `spanner:"added_at"`
}

// Model provides a facade for type-safe operations on the cart_items table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a cart item.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.ItemID,
		data.CartID,
		data.ProductID,
		data.Quantity,
		data.AddedAt,
	})
}

// QuantityMut sets the quantity of an existing cart item.
func (m *Model) QuantityMut(itemID string, quantity int64) *spanner.Mutation {
	return spanner.Update(TableName,
		[]string{ItemID, Quantity},
		[]interface{}{itemID, quantity},
	)
}

// DeleteMut creates a mutation for deleting a cart item.
func (m *Model) DeleteMut(itemID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{itemID})
}
