package update_product

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
)

// Request contains the fields a warehouse clerk may change. Nil fields are
// left alone.
type Request struct {
	ProductID   string
	Name        *string
	Description *string
	Stock       *int64
	CategoryID  *string
	ExpiresOn   *civil.Date
	ClearExpiry bool
	ActorID     string

	// ExpectedVersion, when set, must match the stored version.
	ExpectedVersion *int64
}

// Response reports the product version after the update.
type Response struct {
	Version int64
	Changed bool
}

// Interactor handles the update product use case.
type Interactor struct {
	products   contracts.ProductRepository
	categories contracts.CategoryRepository
	events     contracts.EventRepository
	tx         contracts.TxRunner
	clock      clock.Clock
}

// NewInteractor creates a new update product interactor.
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

// Execute edits the product. Price is not editable here.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("%w: product id is required", domain.ErrProductNotFound)
	}

	var resp *Response
	err := i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		product, err := i.products.Get(ctx, txn, req.ProductID)
		if err != nil {
			return err
		}
		if req.ExpectedVersion != nil && *req.ExpectedVersion != product.Version() {
			return domain.ErrProductModified
		}

		if req.CategoryID != nil && *req.CategoryID != "" && *req.CategoryID != product.CategoryID() {
			category, err := i.categories.Get(ctx, txn, *req.CategoryID)
			if err != nil {
				return err
			}
			if !category.IsLeaf() {
				return domain.ErrCategoryNotLeaf
			}
		}

		err = product.Edit(domain.Details{
			Name:        req.Name,
			Description: req.Description,
			Stock:       req.Stock,
			CategoryID:  req.CategoryID,
			ExpiresOn:   req.ExpiresOn,
			ClearExpiry: req.ClearExpiry,
		}, req.ActorID, i.clock.Now())
		if err != nil {
			return err
		}

		resp = &Response{Version: product.Version()}
		if !product.Changes().HasChanges() {
			return nil
		}

		mut, err := i.products.UpdateMut(product)
		if err != nil {
			return err
		}
		plan.Add(mut)

		eventMuts, err := i.events.InsertMuts(product.DomainEvents())
		if err != nil {
			return err
		}
		plan.AddMultiple(eventMuts)

		resp = &Response{Version: product.Version() + 1, Changed: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
