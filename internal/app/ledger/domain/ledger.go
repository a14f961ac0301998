package domain

import (
	"fmt"
	"time"

	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// Every operation below adjusts product stock and cart lines together.
// Callers load all inputs inside one read-write transaction and persist
// every product, item and event the operation touched in that transaction;
// on error nothing is persisted.

// AddOrIncrement reserves qty units of product into cart. item is the
// existing line for (cart, product) or nil; when nil a new line with id
// newItemID is created. The resulting line is returned.
func AddOrIncrement(cart *Cart, product *Product, item *CartItem, qty int64, newItemID string, now time.Time) (*CartItem, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	if !product.Purchasable() {
		return nil, ErrProductNotFound
	}
	if item != nil && (item.cartID != cart.id || item.productID != product.id) {
		return nil, ErrCartItemNotFound
	}

	if err := product.Reserve(qty); err != nil {
		return nil, err
	}

	if item == nil {
		item = &CartItem{
			id:        newItemID,
			cartID:    cart.id,
			productID: product.id,
			quantity:  qty,
			addedAt:   now,
			state:     ItemCreated,
		}
	} else {
		item.setQuantity(item.quantity + qty)
	}

	cart.recordEvent(&CartItemAddedEvent{
		CartID:    cart.id,
		ItemID:    item.id,
		ProductID: product.id,
		Reserved:  qty,
		Quantity:  item.quantity,
		At:        now,
	})
	return item, nil
}

// SetQuantity moves item to newQty, reserving or releasing the difference.
func SetQuantity(cart *Cart, product *Product, item *CartItem, newQty int64, now time.Time) error {
	if item.cartID != cart.id {
		return ErrCartItemNotFound
	}
	if newQty < 1 {
		return ErrInvalidQuantity
	}

	old := item.quantity
	delta := newQty - old
	switch {
	case delta > 0:
		if err := product.Reserve(delta); err != nil {
			return err
		}
	case delta < 0:
		product.Release(-delta)
	default:
		return nil
	}

	item.setQuantity(newQty)
	cart.recordEvent(&CartItemQuantityChangedEvent{
		CartID:      cart.id,
		ItemID:      item.id,
		ProductID:   item.productID,
		OldQuantity: old,
		NewQuantity: newQty,
		At:          now,
	})
	return nil
}

// Remove deletes item and returns its whole quantity to stock.
func Remove(cart *Cart, product *Product, item *CartItem, reason string, now time.Time) error {
	if item.cartID != cart.id || item.state == ItemDeleted {
		return ErrCartItemNotFound
	}

	product.Release(item.quantity)
	item.markDeleted()

	cart.recordEvent(&CartItemRemovedEvent{
		CartID:    cart.id,
		ItemID:    item.id,
		ProductID: item.productID,
		Released:  item.quantity,
		Reason:    reason,
		At:        now,
	})
	return nil
}

// CheckoutLine pairs a cart item with its product.
type CheckoutLine struct {
	Item    *CartItem
	Product *Product
}

// Checkout converts every line of cart into one completed order and deletes
// the lines. Stock stays reserved: it was taken when the items were added.
func Checkout(cart *Cart, lines []CheckoutLine, orderID, actorID string, now time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &Order{
		ID:        orderID,
		UserID:    cart.userID,
		Status:    OrderStatusCompleted,
		Total:     money.Zero(),
		CreatedBy: actorID,
		CreatedAt: now,
		Lines:     make([]OrderLine, 0, len(lines)),
	}

	for i, line := range lines {
		if line.Item.cartID != cart.id {
			return nil, ErrCartItemNotFound
		}
		price := line.Product.Price()
		if price == nil {
			return nil, fmt.Errorf("%w: %s", ErrProductUnpriced, line.Product.name)
		}

		ol := OrderLine{
			LineNo:      int64(i + 1),
			ProductID:   line.Product.id,
			ProductName: line.Product.name,
			Quantity:    line.Item.quantity,
			UnitPrice:   price,
		}
		order.Total = order.Total.Add(ol.Subtotal())
		order.Lines = append(order.Lines, ol)
	}

	for _, line := range lines {
		line.Item.markDeleted()
	}

	cart.recordEvent(&OrderPlacedEvent{
		OrderID: order.ID,
		UserID:  order.UserID,
		Total:   order.Total.Copy(),
		Lines:   len(order.Lines),
		At:      now,
	})
	return order, nil
}
