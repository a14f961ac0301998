package domain

import (
	"time"

	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// OrderStatusCompleted is the status every checkout produces.
const OrderStatusCompleted = "completed"

// OrderLine is an immutable snapshot of a purchased product.
type OrderLine struct {
	LineNo      int64
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   *money.Money
}

// Subtotal returns quantity times unit price.
func (l OrderLine) Subtotal() *money.Money {
	return l.UnitPrice.MultiplyInt(l.Quantity)
}

// Order is the result of a checkout.
type Order struct {
	ID        string
	UserID    string
	Status    string
	Total     *money.Money
	CreatedBy string
	CreatedAt time.Time
	Lines     []OrderLine
}
