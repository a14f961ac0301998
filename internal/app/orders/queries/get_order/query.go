package get_order

import (
	"context"

	"github.com/light-bringer/backoffice-service/internal/app/orders/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
)

// Request identifies the order and who is asking. Admins may read any
// order.
type Request struct {
	OrderID string
	UserID  string
	AnyUser bool
}

// Query handles the get order query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get order query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute returns the order. Someone else's order is reported as not
// found.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Order, error) {
	if req.OrderID == "" {
		return nil, domain.ErrOrderNotFound
	}
	order, err := q.readModel.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !req.AnyUser && !order.OwnedBy(req.UserID) {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}
