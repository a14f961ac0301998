package sold_products

import (
	"context"

	"github.com/light-bringer/backoffice-service/internal/app/orders/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
)

// Query handles the sold products report.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new sold products query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute totals units and revenue per product over completed orders.
func (q *Query) Execute(ctx context.Context) ([]domain.SoldProduct, error) {
	lines, err := q.readModel.CompletedLines(ctx)
	if err != nil {
		return nil, err
	}
	return domain.TallySold(lines), nil
}
