package checkout

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
)

// Request checks out the caller's cart.
type Request struct {
	UserID string
}

// Interactor handles the checkout use case.
type Interactor struct {
	products contracts.ProductRepository
	carts    contracts.CartRepository
	orders   contracts.OrderRepository
	events   contracts.EventRepository
	tx       contracts.TxRunner
	clock    clock.Clock
	newID    func() string
}

// NewInteractor creates a new checkout interactor.
func NewInteractor(
	products contracts.ProductRepository,
	carts contracts.CartRepository,
	orders contracts.OrderRepository,
	events contracts.EventRepository,
	tx contracts.TxRunner,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		products: products,
		carts:    carts,
		orders:   orders,
		events:   events,
		tx:       tx,
		clock:    clock,
		newID:    func() string { return uuid.New().String() },
	}
}

// Execute turns every line of the user's cart into a completed order and
// empties the cart, all in one transaction.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Order, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user is required", domain.ErrInvalidRequest)
	}

	var order *domain.Order
	err := i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		order = nil

		cart, err := i.carts.FindByUser(ctx, txn, req.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrCartNotFound) {
				return domain.ErrEmptyCart
			}
			return err
		}

		items, err := i.carts.ListItems(ctx, txn, cart.ID())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptyCart
		}

		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID())
		}
		products, err := i.products.GetMany(ctx, txn, ids)
		if err != nil {
			return err
		}

		lines := make([]domain.CheckoutLine, 0, len(items))
		for _, item := range items {
			product, ok := products[item.ProductID()]
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, item.ProductID())
			}
			lines = append(lines, domain.CheckoutLine{Item: item, Product: product})
		}

		placed, err := domain.Checkout(cart, lines, i.newID(), req.UserID, i.clock.Now())
		if err != nil {
			return err
		}

		orderMuts, err := i.orders.InsertMuts(placed)
		if err != nil {
			return err
		}
		plan.AddMultiple(orderMuts)

		for _, item := range items {
			plan.Add(i.carts.ItemMut(item))
		}

		eventMuts, err := i.events.InsertMuts(cart.DomainEvents())
		if err != nil {
			return err
		}
		plan.AddMultiple(eventMuts)

		order = placed
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}
