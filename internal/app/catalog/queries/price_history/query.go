package price_history

import (
	"context"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
)

// Request identifies the product.
type Request struct {
	ProductID string
	Limit     int64
}

// Query handles the price history query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new price history query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute returns the product's price changes, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.PriceHistoryDTO, error) {
	if _, err := q.readModel.GetProduct(ctx, req.ProductID); err != nil {
		return nil, err
	}
	return q.readModel.PriceHistory(ctx, req.ProductID, req.Limit)
}
