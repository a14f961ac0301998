package domain

import (
	"time"

	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// CartItemAddedEvent is emitted when stock is reserved into a cart.
type CartItemAddedEvent struct {
	CartID    string    `json:"cart_id"`
	ItemID    string    `json:"item_id"`
	ProductID string    `json:"product_id"`
	Reserved  int64     `json:"reserved"`
	Quantity  int64     `json:"quantity"`
	At        time.Time `json:"at"`
}

func (e *CartItemAddedEvent) EventType() string   { return "cart.item_added" }
func (e *CartItemAddedEvent) AggregateID() string { return e.CartID }

// CartItemQuantityChangedEvent is emitted when a line's quantity is set.
type CartItemQuantityChangedEvent struct {
	CartID      string    `json:"cart_id"`
	ItemID      string    `json:"item_id"`
	ProductID   string    `json:"product_id"`
	OldQuantity int64     `json:"old_quantity"`
	NewQuantity int64     `json:"new_quantity"`
	At          time.Time `json:"at"`
}

func (e *CartItemQuantityChangedEvent) EventType() string   { return "cart.item_quantity_changed" }
func (e *CartItemQuantityChangedEvent) AggregateID() string { return e.CartID }

// CartItemRemovedEvent is emitted when a line is removed and its stock returned.
type CartItemRemovedEvent struct {
	CartID    string    `json:"cart_id"`
	ItemID    string    `json:"item_id"`
	ProductID string    `json:"product_id"`
	Released  int64     `json:"released"`
	Reason    string    `json:"reason"`
	At        time.Time `json:"at"`
}

func (e *CartItemRemovedEvent) EventType() string   { return "cart.item_removed" }
func (e *CartItemRemovedEvent) AggregateID() string { return e.CartID }

// OrderPlacedEvent is emitted when a cart is checked out.
type OrderPlacedEvent struct {
	OrderID string       `json:"order_id"`
	UserID  string       `json:"user_id"`
	Total   *money.Money `json:"total"`
	Lines   int          `json:"lines"`
	At      time.Time    `json:"at"`
}

func (e *OrderPlacedEvent) EventType() string   { return "order.placed" }
func (e *OrderPlacedEvent) AggregateID() string { return e.OrderID }

// Removal reasons.
const (
	RemovedByCustomer = "customer"
	RemovedAbandoned  = "abandoned"
)
