package update_cart_item

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

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*ledgertest.Store, *Interactor) {
	t.Helper()
	store := ledgertest.NewStore()
	store.PutProduct("p1", ledgertest.ProductRow{Name: "Kettle", Price: money.MustNew(25, 1), Stock: 4, Visible: true})
	store.PutCart("c1", "u1")
	store.PutCart("c2", "u2")
	store.PutItem("i1", ledgertest.ItemRow{CartID: "c1", ProductID: "p1", Quantity: 2, AddedAt: now})
	store.PutItem("i2", ledgertest.ItemRow{CartID: "c2", ProductID: "p1", Quantity: 1, AddedAt: now})

	return store, NewInteractor(store.Products(), store.Carts(), store.EventRepo(), store, clock.NewMockClock(now))
}

func TestUpdateCartItem(t *testing.T) {
	t.Run("growing a line reserves the difference", func(t *testing.T) {
		store, interactor := setup(t)

		resp, err := interactor.Execute(context.Background(), &Request{UserID: "u1", ItemID: "i1", Quantity: 5})
		require.NoError(t, err)

		assert.Equal(t, int64(5), resp.Quantity)
		assert.Equal(t, int64(1), resp.StockLeft)
		assert.Equal(t, int64(5), store.Items("c1")["i1"].Quantity)
	})

	t.Run("shrinking a line releases the difference", func(t *testing.T) {
		store, interactor := setup(t)

		_, err := interactor.Execute(context.Background(), &Request{UserID: "u1", ItemID: "i1", Quantity: 1})
		require.NoError(t, err)

		assert.Equal(t, int64(5), store.Product("p1").Stock)
	})

	t.Run("same quantity commits nothing", func(t *testing.T) {
		store, interactor := setup(t)

		_, err := interactor.Execute(context.Background(), &Request{UserID: "u1", ItemID: "i1", Quantity: 2})
		require.NoError(t, err)

		assert.Equal(t, int64(0), store.Product("p1").Version)
		assert.Empty(t, store.Events())
	})

	t.Run("growing past stock fails atomically", func(t *testing.T) {
		store, interactor := setup(t)

		_, err := interactor.Execute(context.Background(), &Request{UserID: "u1", ItemID: "i1", Quantity: 7})
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		assert.Equal(t, int64(4), store.Product("p1").Stock)
		assert.Equal(t, int64(2), store.Items("c1")["i1"].Quantity)
	})

	t.Run("another user's item is not found", func(t *testing.T) {
		store, interactor := setup(t)

		_, err := interactor.Execute(context.Background(), &Request{UserID: "u1", ItemID: "i2", Quantity: 3})
		assert.ErrorIs(t, err, domain.ErrCartItemNotFound)
		assert.Equal(t, int64(1), store.Items("c2")["i2"].Quantity)
	})

	t.Run("user without a cart", func(t *testing.T) {
		_, interactor := setup(t)

		_, err := interactor.Execute(context.Background(), &Request{UserID: "nobody", ItemID: "i1", Quantity: 3})
		assert.ErrorIs(t, err, domain.ErrCartItemNotFound)
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		_, interactor := setup(t)

		_, err := interactor.Execute(context.Background(), &Request{UserID: "u1", ItemID: "i1", Quantity: 0})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	})
}
