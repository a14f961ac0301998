package get_cart

import (
	"context"
	"fmt"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
)

// Request identifies whose cart to show.
type Request struct {
	UserID string
}

// Query handles the get cart query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get cart query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute returns the user's cart. A user without a cart gets an empty one.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.CartDTO, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user is required", domain.ErrInvalidRequest)
	}
	return q.readModel.GetCart(ctx, req.UserID)
}
