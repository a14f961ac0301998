package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

// TxRunner runs a read-write transaction. Satisfied by *committer.Committer.
type TxRunner interface {
	RunInTx(ctx context.Context, fn committer.TxFunc) error
}

// ProductRepository reads and writes the stock side of products.
// Reads made through a read-write transaction lock the rows they return.
type ProductRepository interface {
	// Get loads one product. Returns domain.ErrProductNotFound if absent.
	Get(ctx context.Context, rd query.Reader, productID string) (*domain.Product, error)

	// GetMany loads products by id. Missing ids are absent from the map.
	GetMany(ctx context.Context, rd query.Reader, productIDs []string) (map[string]*domain.Product, error)

	// StockMut persists a changed stock level and version; nil if unchanged.
	StockMut(product *domain.Product) *spanner.Mutation
}

// CartRepository reads and writes carts and their items.
type CartRepository interface {
	// FindByUser returns the user's cart or domain.ErrCartNotFound.
	FindByUser(ctx context.Context, rd query.Reader, userID string) (*domain.Cart, error)

	// Get returns a cart by id or domain.ErrCartNotFound.
	Get(ctx context.Context, rd query.Reader, cartID string) (*domain.Cart, error)

	// InsertMut stores a new cart.
	InsertMut(cart *domain.Cart) *spanner.Mutation

	// FindItem returns the line for (cart, product) or domain.ErrCartItemNotFound.
	FindItem(ctx context.Context, rd query.Reader, cartID, productID string) (*domain.CartItem, error)

	// GetItem returns a line by id or domain.ErrCartItemNotFound.
	GetItem(ctx context.Context, rd query.Reader, itemID string) (*domain.CartItem, error)

	// ListItems returns all lines of a cart, oldest first.
	ListItems(ctx context.Context, rd query.Reader, cartID string) ([]*domain.CartItem, error)

	// ItemMut persists the item's pending state change; nil if unchanged.
	ItemMut(item *domain.CartItem) *spanner.Mutation

	// ListAbandoned returns ids of carts holding an item added before cutoff.
	ListAbandoned(ctx context.Context, cutoff time.Time) ([]string, error)
}

// OrderRepository stores orders created by checkout.
type OrderRepository interface {
	InsertMuts(order *domain.Order) ([]*spanner.Mutation, error)
}

// EventRepository turns domain events into outbox mutations.
type EventRepository interface {
	InsertMuts(events []outbox.Event) ([]*spanner.Mutation, error)
}
