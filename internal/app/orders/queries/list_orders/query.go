package list_orders

import (
	"context"
	"fmt"

	"github.com/light-bringer/backoffice-service/internal/app/orders/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
)

// Request selects whose orders to list. AllUsers is for admins and
// ignores UserID.
type Request struct {
	UserID   string
	AllUsers bool
	Limit    int64
	Offset   int64
}

// Query handles the list orders query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list orders query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute lists orders with their lines, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.Order, error) {
	filter := contracts.OrderFilter{UserID: req.UserID, Limit: req.Limit, Offset: req.Offset}
	if req.AllUsers {
		filter.UserID = ""
	} else if req.UserID == "" {
		return nil, fmt.Errorf("%w: user is required", domain.ErrInvalidRequest)
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	orders, err := q.readModel.ListOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}
