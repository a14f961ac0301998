package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// CartLineDTO is one line of a cart as shown to its owner.
type CartLineDTO struct {
	ItemID      string
	ProductID   string
	ProductName string
	UnitPrice   *money.Money // nil when the price was cleared after the add
	Quantity    int64
	Subtotal    *money.Money
	AddedAt     time.Time
}

// CartDTO is the read model of a customer's cart.
type CartDTO struct {
	CartID    string // empty when the user never added anything
	Lines     []*CartLineDTO
	ItemCount int64
	Total     *money.Money
}

// ReadModel serves ledger queries without loading aggregates.
type ReadModel interface {
	GetCart(ctx context.Context, userID string) (*CartDTO, error)
}
