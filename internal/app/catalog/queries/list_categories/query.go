package list_categories

import (
	"context"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
)

// Query handles the list categories query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list categories query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute returns the top-level categories with their subcategories.
func (q *Query) Execute(ctx context.Context) ([]*contracts.CategoryDTO, error) {
	return q.readModel.ListCategories(ctx)
}
