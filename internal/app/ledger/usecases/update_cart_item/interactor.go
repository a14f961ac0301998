package update_cart_item

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

// Request sets the quantity of one of the caller's cart lines.
type Request struct {
	UserID   string
	ItemID   string
	Quantity int64
}

// Response describes the line after the update.
type Response struct {
	ItemID    string
	Quantity  int64
	StockLeft int64
}

// Interactor handles the update cart item use case.
type Interactor struct {
	products contracts.ProductRepository
	carts    contracts.CartRepository
	events   contracts.EventRepository
	tx       contracts.TxRunner
	clock    clock.Clock
}

// NewInteractor creates a new update cart item interactor.
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

// Execute moves the line to the requested quantity, reserving or
// releasing the difference.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.UserID == "" || req.ItemID == "" {
		return nil, fmt.Errorf("%w: user and item are required", domain.ErrInvalidRequest)
	}
	if req.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	var resp *Response
	err := i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
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
		if item.CartID() != cart.ID() {
			return domain.ErrCartItemNotFound
		}

		product, err := i.products.Get(ctx, txn, item.ProductID())
		if err != nil {
			return err
		}

		if err := domain.SetQuantity(cart, product, item, req.Quantity, i.clock.Now()); err != nil {
			return err
		}

		plan.Add(i.products.StockMut(product))
		plan.Add(i.carts.ItemMut(item))

		eventMuts, err := i.events.InsertMuts(cart.DomainEvents())
		if err != nil {
			return err
		}
		plan.AddMultiple(eventMuts)

		resp = &Response{
			ItemID:    item.ID(),
			Quantity:  item.Quantity(),
			StockLeft: product.Stock(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
