package remove_cart_item

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
)

// Request removes one of the caller's cart lines.
type Request struct {
	UserID string
	ItemID string
}

// Interactor handles the remove cart item use case.
type Interactor struct {
	products contracts.ProductRepository
	carts    contracts.CartRepository
	events   contracts.EventRepository
	tx       contracts.TxRunner
	clock    clock.Clock
}

// NewInteractor creates a new remove cart item interactor.
func NewInteractor(
	products contracts.ProductRepository,
	carts contracts.CartRepository,
	events contracts.EventRepository,
	tx contracts.TxRunner,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		products: products,
		carts:    carts,
		events:   events,
		tx:       tx,
		clock:    clock,
	}
}

// Execute deletes the line and returns its quantity to stock.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.UserID == "" || req.ItemID == "" {
		return fmt.Errorf("%w: user and item are required", domain.ErrInvalidRequest)
	}

	return i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		cart, err := i.carts.FindByUser(ctx, txn, req.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrCartNotFound) {
				return domain.ErrCartItemNotFound
			}
			return err
		}

		item, err := i.carts.GetItem(ctx, txn, req.ItemID)
		if err != nil {
			return err
		}

		product, err := i.products.Get(ctx, txn, item.ProductID())
		if err != nil {
			return err
		}

		if err := domain.Remove(cart, product, item, domain.RemovedByCustomer, i.clock.Now()); err != nil {
			return err
		}

		plan.Add(i.products.StockMut(product))
		plan.Add(i.carts.ItemMut(item))

		eventMuts, err := i.events.InsertMuts(cart.DomainEvents())
		if err != nil {
			return err
		}
		plan.AddMultiple(eventMuts)
		return nil
	})
}
