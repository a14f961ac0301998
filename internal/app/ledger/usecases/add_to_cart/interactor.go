package add_to_cart

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

// Request contains the data needed to reserve a product into a cart.
type Request struct {
	UserID    string
	ProductID string
	Quantity  int64
}

// Response describes the cart line after the reservation.
type Response struct {
	CartID    string
	ItemID    string
	Quantity  int64
	StockLeft int64
}

// Interactor handles the add to cart use case.
type Interactor struct {
	products contracts.ProductRepository
	carts    contracts.CartRepository
	events   contracts.EventRepository
	tx       contracts.TxRunner
	clock    clock.Clock
	newID    func() string
}

// NewInteractor creates a new add to cart interactor.
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
		newID:    func() string { return uuid.New().String() },
	}
}

// Execute reserves req.Quantity units of the product into the user's cart,
// creating the cart or the line when needed.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.UserID == "" || req.ProductID == "" {
		return nil, fmt.Errorf("%w: user and product are required", domain.ErrInvalidRequest)
	}
	if req.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	var resp *Response
	err := i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		product, err := i.products.Get(ctx, txn, req.ProductID)
		if err != nil {
			return err
		}

		cart, err := i.carts.FindByUser(ctx, txn, req.UserID)
		switch {
		case errors.Is(err, domain.ErrCartNotFound):
			cart = domain.NewCart(i.newID(), req.UserID)
		case err != nil:
			return err
		}

		var item *domain.CartItem
		if !cart.IsNew() {
			item, err = i.carts.FindItem(ctx, txn, cart.ID(), product.ID())
			if err != nil && !errors.Is(err, domain.ErrCartItemNotFound) {
				return err
			}
		}

		item, err = domain.AddOrIncrement(cart, product, item, req.Quantity, i.newID(), i.clock.Now())
		if err != nil {
			return err
		}

		plan.Add(i.carts.InsertMut(cart))
		plan.Add(i.products.StockMut(product))
		plan.Add(i.carts.ItemMut(item))

		eventMuts, err := i.events.InsertMuts(cart.DomainEvents())
		if err != nil {
			return err
		}
		plan.AddMultiple(eventMuts)

		resp = &Response{
			CartID:    cart.ID(),
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
