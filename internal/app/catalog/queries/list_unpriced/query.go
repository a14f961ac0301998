package list_unpriced

import (
	"context"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
)

// Request limits the result size.
type Request struct {
	Limit int64
}

// Query handles the list unpriced query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list unpriced query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute lists the products waiting for an admin to price them, oldest
// first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.ProductDTO, error) {
	return q.readModel.ListUnpriced(ctx, req.Limit)
}
