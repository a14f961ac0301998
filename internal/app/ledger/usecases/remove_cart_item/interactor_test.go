package remove_cart_item

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/ledgertest"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

func TestRemoveCartItem(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := ledgertest.NewStore()
	store.PutProduct("p1", ledgertest.ProductRow{Name: "Kettle", Price: money.MustNew(25, 1), Stock: 1, Visible: true})
	store.PutCart("c1", "u1")
	store.PutCart("c2", "u2")
	store.PutItem("i1", ledgertest.ItemRow{CartID: "c1", ProductID: "p1", Quantity: 3, AddedAt: now})
	store.PutItem("i2", ledgertest.ItemRow{CartID: "c2", ProductID: "p1", Quantity: 1, AddedAt: now})

	interactor := NewInteractor(store.Products(), store.Carts(), store.EventRepo(), store, clock.NewMockClock(now))
	ctx := context.Background()

	err := interactor.Execute(ctx, &Request{UserID: "u1", ItemID: "i2"})
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)

	require.NoError(t, interactor.Execute(ctx, &Request{UserID: "u1", ItemID: "i1"}))
	assert.Empty(t, store.Items("c1"))
	assert.Equal(t, int64(4), store.Product("p1").Stock)

	events := store.Events()
	require.Len(t, events, 1)
	removed, ok := events[0].(*domain.CartItemRemovedEvent)
	require.True(t, ok)
	assert.Equal(t, domain.RemovedByCustomer, removed.Reason)
	assert.Equal(t, int64(3), removed.Released)

	err = interactor.Execute(ctx, &Request{UserID: "u1", ItemID: "i1"})
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)
}
