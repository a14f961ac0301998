package create_product

import (
	"context"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
)

// Request contains the data needed to stock a new product.
type Request struct {
	Name        string
	Description string
	Stock       int64
	CategoryID  string
	ExpiresOn   *civil.Date
	ActorID     string
}

// Response contains the ID of the created product.
type Response struct {
	ProductID string
}

// Interactor handles the create product use case.
type Interactor struct {
	products   contracts.ProductRepository
	categories contracts.CategoryRepository
	events     contracts.EventRepository
	tx         contracts.TxRunner
	clock      clock.Clock
}

// NewInteractor creates a new create product interactor.
func NewInteractor(
	products contracts.ProductRepository,
	categories contracts.CategoryRepository,
	events contracts.EventRepository,
	tx contracts.TxRunner,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		products:   products,
		categories: categories,
		events:     events,
		tx:         tx,
		clock:      clock,
	}
}

// Execute creates an unpriced product. It stays hidden from the catalog
// until an admin assigns a price.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	product, err := domain.NewProduct(
		uuid.New().String(),
		req.Name,
		req.Description,
		req.Stock,
		req.CategoryID,
		req.ExpiresOn,
		req.ActorID,
		i.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	err = i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		if err := checkLeaf(ctx, i.categories, txn, req.CategoryID); err != nil {
			return err
		}

		mut, err := i.products.InsertMut(product)
		if err != nil {
			return err
		}
		plan.Add(mut)

		eventMuts, err := i.events.InsertMuts(product.DomainEvents())
		if err != nil {
			return err
		}
		plan.AddMultiple(eventMuts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Response{ProductID: product.ID()}, nil
}

func checkLeaf(ctx context.Context, categories contracts.CategoryRepository, txn *spanner.ReadWriteTransaction, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	category, err := categories.Get(ctx, txn, categoryID)
	if err != nil {
		return err
	}
	if !category.IsLeaf() {
		return domain.ErrCategoryNotLeaf
	}
	return nil
}
