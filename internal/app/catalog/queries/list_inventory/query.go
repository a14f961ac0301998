package list_inventory

import (
	"context"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
)

// Request pages through the inventory.
type Request struct {
	Limit  int64
	Offset int64
}

// Query handles the list inventory query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list inventory query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute lists every product, priced or not.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.ProductDTO, error) {
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}
	return q.readModel.ListInventory(ctx, req.Limit, offset)
}
