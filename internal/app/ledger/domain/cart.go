package domain

import (
	"time"

	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
)

// Cart is the aggregate root for a customer's reservations.
// Carts are created lazily on the first add and never deleted.
type Cart struct {
	id     string
	userID string
	isNew  bool

	events []outbox.Event
}

// NewCart creates a cart that has not been stored yet.
func NewCart(id, userID string) *Cart {
	return &Cart{id: id, userID: userID, isNew: true}
}

// ReconstructCart rebuilds a stored cart.
func ReconstructCart(id, userID string) *Cart {
	return &Cart{id: id, userID: userID}
}

func (c *Cart) ID() string     { return c.id }
func (c *Cart) UserID() string { return c.userID }
func (c *Cart) IsNew() bool    { return c.isNew }

// DomainEvents returns the events recorded since the cart was loaded.
func (c *Cart) DomainEvents() []outbox.Event {
	return c.events
}

func (c *Cart) recordEvent(e outbox.Event) {
	c.events = append(c.events, e)
}

// ItemState tells the repository which mutation an item needs.
type ItemState int

const (
	ItemUnchanged ItemState = iota
	ItemCreated
	ItemUpdated
	ItemDeleted
)

// CartItem is one product line in a cart. quantity is always >= 1 while the item exists.
type CartItem struct {
	id        string
	cartID    string
	productID string
	quantity  int64
	addedAt   time.Time

	state ItemState
}

// ReconstructCartItem rebuilds a stored cart item.
func ReconstructCartItem(id, cartID, productID string, quantity int64, addedAt time.Time) *CartItem {
	return &CartItem{
		id:        id,
		cartID:    cartID,
		productID: productID,
		quantity:  quantity,
		addedAt:   addedAt,
	}
}

func (i *CartItem) ID() string         { return i.id }
func (i *CartItem) CartID() string     { return i.cartID }
func (i *CartItem) ProductID() string  { return i.productID }
func (i *CartItem) Quantity() int64    { return i.quantity }
func (i *CartItem) AddedAt() time.Time { return i.addedAt }
func (i *CartItem) State() ItemState   { return i.state }

func (i *CartItem) setQuantity(q int64) {
	i.quantity = q
	if i.state == ItemUnchanged {
		i.state = ItemUpdated
	}
}

func (i *CartItem) markDeleted() {
	i.state = ItemDeleted
}
