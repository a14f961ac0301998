package m_cart_item

// Field name constants for the cart_items table.
const (
	TableName = "cart_items"

	ItemID    = "item_id"
	CartID    = "cart_id"
	ProductID = "product_id"
	Quantity  = "quantity"
	AddedAt   = "added_at"
)

// Columns lists every column in Data order.
var Columns = []string{ItemID, CartID, ProductID, Quantity, AddedAt}
