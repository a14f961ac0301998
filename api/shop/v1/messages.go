package shopv1

import "time"

// Prices and totals are decimal strings with two places, e.g. "19.90".

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginReply struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type AddToCartReply struct {
	CartID    string `json:"cart_id"`
	ItemID    string `json:"item_id"`
	Quantity  int64  `json:"quantity"`
	StockLeft int64  `json:"stock_left"`
}

type UpdateCartItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

type UpdateCartItemReply struct {
	ItemID    string `json:"item_id"`
	Quantity  int64  `json:"quantity"`
	StockLeft int64  `json:"stock_left"`
}

type RemoveCartItemRequest struct {
	ItemID string `json:"item_id"`
}

type RemoveCartItemReply struct{}

type GetCartRequest struct{}

type CartLine struct {
	ItemID      string `json:"item_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price,omitempty"`
	Quantity    int64  `json:"quantity"`
	Subtotal    string `json:"subtotal,omitempty"`
}

type Cart struct {
	CartID    string     `json:"cart_id,omitempty"`
	Lines     []CartLine `json:"lines"`
	ItemCount int64      `json:"item_count"`
	Total     string     `json:"total"`
}

type CheckoutRequest struct{}

type OrderLine struct {
	LineNo      int64  `json:"line_no"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type Order struct {
	OrderID   string      `json:"order_id"`
	Status    string      `json:"status"`
	Total     string      `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
	Lines     []OrderLine `json:"lines"`
}
