package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

// TxRunner runs read-then-write work in one transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn committer.TxFunc) error
}

// ProductRepository defines product persistence.
// Repositories return mutations, they don't apply them.
type ProductRepository interface {
	Get(ctx context.Context, rd query.Reader, productID string) (*domain.Product, error)

	// InsertMut returns an error if the price cannot be stored.
	InsertMut(product *domain.Product) (*spanner.Mutation, error)

	// UpdateMut writes dirty fields and bumps the version. It returns nil
	// when nothing changed.
	UpdateMut(product *domain.Product) (*spanner.Mutation, error)
}

// CategoryRepository defines category persistence.
type CategoryRepository interface {
	Get(ctx context.Context, rd query.Reader, categoryID string) (*domain.Category, error)
	List(ctx context.Context, rd query.Reader) ([]*domain.Category, error)
	InsertMut(category *domain.Category) *spanner.Mutation
}

// PriceHistoryRepository records price changes.
type PriceHistoryRepository interface {
	InsertMut(change *domain.PriceChange) (*spanner.Mutation, error)
}

// EventRepository builds outbox mutations.
type EventRepository interface {
	InsertMuts(events []outbox.Event) ([]*spanner.Mutation, error)
}
