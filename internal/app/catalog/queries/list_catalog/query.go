package list_catalog

import (
	"context"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
)

// Request filters the customer catalog.
type Request struct {
	CategoryID string
	Search     string
	Limit      int64
	Offset     int64
}

// Query handles the list catalog query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list catalog query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute lists priced products that are in stock.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.ProductDTO, error) {
	filter := contracts.CatalogFilter{
		CategoryID: req.CategoryID,
		Search:     req.Search,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return q.readModel.ListCatalog(ctx, filter)
}
