package release_abandoned_carts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
)

// DefaultOlderThan is how long an item may sit in a cart before release.
const DefaultOlderThan = 24 * time.Hour

// Request configures one release run.
type Request struct {
	OlderThan time.Duration
	DryRun    bool
}

// CartRelease describes what was (or would be) returned from one cart.
type CartRelease struct {
	CartID string
	UserID string
	Items  int
	Units  int64
}

// Report summarizes a run.
type Report struct {
	Cutoff     time.Time
	DryRun     bool
	Carts      []CartRelease
	TotalItems int
	TotalUnits int64
	Failed     int
}

// Interactor releases the stock held by abandoned carts.
type Interactor struct {
	products contracts.ProductRepository
	carts    contracts.CartRepository
	events   contracts.EventRepository
	tx       contracts.TxRunner
	clock    clock.Clock
	logger   *slog.Logger
}

// NewInteractor creates a new release abandoned carts interactor.
func NewInteractor(
	products contracts.ProductRepository,
	carts contracts.CartRepository,
	events contracts.EventRepository,
	tx contracts.TxRunner,
	clock clock.Clock,
	logger *slog.Logger,
) *Interactor {
	return &Interactor{
		products: products,
		carts:    carts,
		events:   events,
		tx:       tx,
		clock:    clock,
		logger:   logger,
	}
}

// Execute removes every item of each cart that holds an item added before
// now - OlderThan, returning the quantities to stock. Each cart is
// released in its own transaction; a failing cart is logged and skipped.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Report, error) {
	olderThan := req.OlderThan
	if olderThan <= 0 {
		olderThan = DefaultOlderThan
	}

	now := i.clock.Now()
	report := &Report{Cutoff: now.Add(-olderThan), DryRun: req.DryRun}

	cartIDs, err := i.carts.ListAbandoned(ctx, report.Cutoff)
	if err != nil {
		return nil, err
	}

	for _, cartID := range cartIDs {
		released, err := i.releaseCart(ctx, cartID, report.Cutoff, now, req.DryRun)
		if err != nil {
			report.Failed++
			i.logger.ErrorContext(ctx, "failed to release cart", "cart_id", cartID, "error", err)
			continue
		}
		if released == nil {
			continue
		}

		report.Carts = append(report.Carts, *released)
		report.TotalItems += released.Items
		report.TotalUnits += released.Units
		i.logger.InfoContext(ctx, "released abandoned cart",
			"cart_id", released.CartID,
			"user_id", released.UserID,
			"items", released.Items,
			"units", released.Units,
			"dry_run", req.DryRun,
		)
	}

	return report, nil
}

func (i *Interactor) releaseCart(ctx context.Context, cartID string, cutoff, now time.Time, dryRun bool) (*CartRelease, error) {
	var released *CartRelease
	err := i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		released = nil

		cart, err := i.carts.Get(ctx, txn, cartID)
		if err != nil {
			return err
		}

		items, err := i.carts.ListItems(ctx, txn, cartID)
		if err != nil {
			return err
		}
		if !holdsItemBefore(items, cutoff) {
			return nil
		}

		ids := make([]string, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID())
		}
		products, err := i.products.GetMany(ctx, txn, ids)
		if err != nil {
			return err
		}

		result := &CartRelease{CartID: cart.ID(), UserID: cart.UserID()}
		for _, item := range items {
			product, ok := products[item.ProductID()]
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, item.ProductID())
			}
			if err := domain.Remove(cart, product, item, domain.RemovedAbandoned, now); err != nil {
				return err
			}
			result.Items++
			result.Units += item.Quantity()
		}

		if !dryRun {
			for _, product := range products {
				plan.Add(i.products.StockMut(product))
			}
			for _, item := range items {
				plan.Add(i.carts.ItemMut(item))
			}
			eventMuts, err := i.events.InsertMuts(cart.DomainEvents())
			if err != nil {
				return err
			}
			plan.AddMultiple(eventMuts)
		}

		released = result
		return nil
	})
	if errors.Is(err, domain.ErrCartNotFound) {
		return nil, nil
	}
	return released, err
}

func holdsItemBefore(items []*domain.CartItem, cutoff time.Time) bool {
	for _, item := range items {
		if item.AddedAt().Before(cutoff) {
			return true
		}
	}
	return false
}
