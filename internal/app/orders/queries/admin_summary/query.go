package admin_summary

import (
	"context"

	"github.com/light-bringer/backoffice-service/internal/app/orders/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
)

// Query handles the admin dashboard summary.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new admin summary query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute returns the dashboard counters.
func (q *Query) Execute(ctx context.Context) (*domain.Summary, error) {
	return q.readModel.Summary(ctx)
}
