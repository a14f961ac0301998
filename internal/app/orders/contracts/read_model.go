package contracts

import (
	"context"

	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
)

// OrderFilter narrows ListOrders. An empty UserID lists every customer.
type OrderFilter struct {
	UserID string
	Limit  int64
	Offset int64
}

// ReadModel serves order history and sales reports.
type ReadModel interface {
	// ListOrders returns orders with their lines, newest first.
	ListOrders(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)

	// EachOrder calls fn for every order, oldest first, stopping at the
	// first error.
	EachOrder(ctx context.Context, fn func(*domain.Order) error) error

	// CompletedLines returns the lines of completed orders, newest first.
	CompletedLines(ctx context.Context) ([]domain.Line, error)

	Summary(ctx context.Context) (*domain.Summary, error)
}
