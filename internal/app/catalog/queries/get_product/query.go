package get_product

import (
	"context"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
)

// Request identifies the product. Staff set IncludeHidden to see unpriced
// and sold-out products.
type Request struct {
	ProductID     string
	IncludeHidden bool
}

// Query handles the get product query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute returns the product. Customers get ErrProductNotFound for
// anything they could not buy.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductDTO, error) {
	if req.ProductID == "" {
		return nil, domain.ErrProductNotFound
	}
	product, err := q.readModel.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !req.IncludeHidden && (!product.Visible || product.Stock <= 0) {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}
