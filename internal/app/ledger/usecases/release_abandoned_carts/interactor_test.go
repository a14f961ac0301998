package release_abandoned_carts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/ledgertest"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/logging"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

var now = time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)

func seed() *ledgertest.Store {
	store := ledgertest.NewStore()
	store.PutProduct("p1", ledgertest.ProductRow{Name: "Kettle", Price: money.MustNew(25, 1), Stock: 0, Visible: true})
	store.PutProduct("p2", ledgertest.ProductRow{Name: "Mug", Price: money.MustNew(8, 1), Stock: 1, Visible: true})

	// c1 holds one stale and one fresh line; the whole cart is released.
	store.PutCart("c1", "u1")
	store.PutItem("i1", ledgertest.ItemRow{CartID: "c1", ProductID: "p1", Quantity: 2, AddedAt: now.Add(-30 * time.Hour)})
	store.PutItem("i2", ledgertest.ItemRow{CartID: "c1", ProductID: "p2", Quantity: 1, AddedAt: now.Add(-time.Hour)})

	store.PutCart("c2", "u2")
	store.PutItem("i3", ledgertest.ItemRow{CartID: "c2", ProductID: "p1", Quantity: 1, AddedAt: now.Add(-2 * time.Hour)})
	return store
}

func newInteractor(store *ledgertest.Store) *Interactor {
	return NewInteractor(store.Products(), store.Carts(), store.EventRepo(), store, clock.NewMockClock(now), logging.Discard())
}

func TestReleaseAbandonedCarts(t *testing.T) {
	store := seed()

	report, err := newInteractor(store).Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, now.Add(-DefaultOlderThan), report.Cutoff)
	require.Len(t, report.Carts, 1)
	assert.Equal(t, CartRelease{CartID: "c1", UserID: "u1", Items: 2, Units: 3}, report.Carts[0])
	assert.Equal(t, 2, report.TotalItems)
	assert.Equal(t, int64(3), report.TotalUnits)
	assert.Zero(t, report.Failed)

	assert.Empty(t, store.Items("c1"))
	assert.Len(t, store.Items("c2"), 1)
	assert.Equal(t, int64(2), store.Product("p1").Stock)
	assert.Equal(t, int64(2), store.Product("p2").Stock)

	for _, e := range store.Events() {
		removed, ok := e.(*domain.CartItemRemovedEvent)
		require.True(t, ok)
		assert.Equal(t, domain.RemovedAbandoned, removed.Reason)
	}
}

func TestReleaseAbandonedCarts_DryRun(t *testing.T) {
	store := seed()

	report, err := newInteractor(store).Execute(context.Background(), &Request{DryRun: true, OlderThan: time.Hour + time.Minute})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Len(t, report.Carts, 2)
	assert.Equal(t, int64(4), report.TotalUnits)

	assert.Len(t, store.Items("c1"), 2)
	assert.Len(t, store.Items("c2"), 1)
	assert.Zero(t, store.Product("p1").Stock)
	assert.Empty(t, store.Events())
}

func TestReleaseAbandonedCarts_NothingToDo(t *testing.T) {
	report, err := newInteractor(ledgertest.NewStore()).Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Empty(t, report.Carts)
	assert.Zero(t, report.TotalUnits)
}
