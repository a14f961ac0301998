package assign_price

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// Request sets a product price. A nil Price withdraws the product from the
// catalog.
type Request struct {
	ProductID string
	Price     *string
	ActorID   string
}

// Response describes the product after pricing.
type Response struct {
	Price   *money.Money
	Visible bool
	Changed bool
}

// Interactor handles the assign price use case.
type Interactor struct {
	products contracts.ProductRepository
	history  contracts.PriceHistoryRepository
	events   contracts.EventRepository
	tx       contracts.TxRunner
	clock    clock.Clock
}

// NewInteractor creates a new assign price interactor.
func NewInteractor(
	products contracts.ProductRepository,
	history contracts.PriceHistoryRepository,
	events contracts.EventRepository,
	tx contracts.TxRunner,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		products: products,
		history:  history,
		events:   events,
		tx:       tx,
		clock:    clock,
	}
}

// Execute assigns the price and records it in the price history.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	var price *money.Money
	if req.Price != nil {
		parsed, err := money.Parse(*req.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPrice, err)
		}
		price = parsed
	}

	var resp *Response
	err := i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		product, err := i.products.Get(ctx, txn, req.ProductID)
		if err != nil {
			return err
		}

		change, err := product.AssignPrice(price, req.ActorID, i.clock.Now())
		if err != nil {
			return err
		}
		resp = &Response{Price: product.Price(), Visible: product.Visible(), Changed: change != nil}
		if change == nil {
			return nil
		}

		mut, err := i.products.UpdateMut(product)
		if err != nil {
			return err
		}
		plan.Add(mut)

		historyMut, err := i.history.InsertMut(change)
		if err != nil {
			return err
		}
		plan.Add(historyMut)

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

	return resp, nil
}
