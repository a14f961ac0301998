package domain

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

var now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func pricedProduct(id string, price *money.Money, stock int64) *Product {
	return ReconstructProduct(id, "Product "+id, price, stock, true, 1)
}

func TestAddOrIncrement(t *testing.T) {
	t.Run("creates a line and reserves stock", func(t *testing.T) {
		cart := NewCart("c-1", "u-1")
		product := pricedProduct("p-1", money.MustNew(10, 1), 5)

		item, err := AddOrIncrement(cart, product, nil, 2, "i-1", now)
		require.NoError(t, err)

		assert.Equal(t, "i-1", item.ID())
		assert.Equal(t, int64(2), item.Quantity())
		assert.Equal(t, ItemCreated, item.State())
		assert.Equal(t, now, item.AddedAt())
		assert.Equal(t, int64(3), product.Stock())
		assert.True(t, product.StockChanged())
		assert.Equal(t, int64(2), product.Version())
		require.Len(t, cart.DomainEvents(), 1)
		assert.Equal(t, "cart.item_added", cart.DomainEvents()[0].EventType())
	})

	t.Run("increments an existing line", func(t *testing.T) {
		cart := ReconstructCart("c-1", "u-1")
		product := pricedProduct("p-1", money.MustNew(10, 1), 5)
		existing := ReconstructCartItem("i-1", "c-1", "p-1", 2, now.Add(-time.Hour))

		item, err := AddOrIncrement(cart, product, existing, 3, "ignored", now)
		require.NoError(t, err)

		assert.Same(t, existing, item)
		assert.Equal(t, int64(5), item.Quantity())
		assert.Equal(t, ItemUpdated, item.State())
		assert.Equal(t, int64(2), product.Stock())
	})

	t.Run("insufficient stock changes nothing", func(t *testing.T) {
		cart := NewCart("c-1", "u-1")
		product := pricedProduct("p-1", money.MustNew(10, 1), 3)

		item, err := AddOrIncrement(cart, product, nil, 4, "i-1", now)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Nil(t, item)
		assert.Equal(t, int64(3), product.Stock())
		assert.False(t, product.StockChanged())
		assert.Empty(t, cart.DomainEvents())
	})

	t.Run("rejects quantities below one", func(t *testing.T) {
		for _, qty := range []int64{0, -1} {
			product := pricedProduct("p-1", money.MustNew(10, 1), 3)
			_, err := AddOrIncrement(NewCart("c-1", "u-1"), product, nil, qty, "i-1", now)
			assert.ErrorIs(t, err, ErrInvalidQuantity)
			assert.Equal(t, int64(3), product.Stock())
		}
	})

	t.Run("unpriced product is not found", func(t *testing.T) {
		product := ReconstructProduct("p-1", "Hidden", nil, 10, false, 1)
		_, err := AddOrIncrement(NewCart("c-1", "u-1"), product, nil, 1, "i-1", now)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestSetQuantity(t *testing.T) {
	cart := ReconstructCart("c-1", "u-1")
	product := pricedProduct("p-1", money.MustNew(10, 1), 3)
	item := ReconstructCartItem("i-1", "c-1", "p-1", 2, now)

	require.NoError(t, SetQuantity(cart, product, item, 5, now))
	assert.Equal(t, int64(0), product.Stock())
	assert.Equal(t, int64(5), item.Quantity())

	err := SetQuantity(cart, product, item, 6, now)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, int64(0), product.Stock())
	assert.Equal(t, int64(5), item.Quantity())

	require.NoError(t, SetQuantity(cart, product, item, 1, now))
	assert.Equal(t, int64(4), product.Stock())
	assert.Equal(t, int64(1), item.Quantity())

	assert.ErrorIs(t, SetQuantity(cart, product, item, 0, now), ErrInvalidQuantity)
	assert.Equal(t, int64(1), item.Quantity())
}

func TestSetQuantity_IncreaseLimitedByFreeStock(t *testing.T) {
	cart := ReconstructCart("c-1", "u-1")
	product := pricedProduct("p-1", money.MustNew(10, 1), 2)
	item := ReconstructCartItem("i-1", "c-1", "p-1", 2, now)

	err := SetQuantity(cart, product, item, 5, now)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, int64(2), product.Stock())
	assert.Equal(t, int64(2), item.Quantity())

	require.NoError(t, SetQuantity(cart, product, item, 4, now))
	assert.Equal(t, int64(0), product.Stock())
}

func TestSetQuantity_ForeignItem(t *testing.T) {
	cart := ReconstructCart("c-1", "u-1")
	product := pricedProduct("p-1", money.MustNew(10, 1), 5)
	item := ReconstructCartItem("i-9", "c-other", "p-1", 1, now)

	assert.ErrorIs(t, SetQuantity(cart, product, item, 2, now), ErrCartItemNotFound)
	assert.Equal(t, int64(5), product.Stock())
}

func TestRemove(t *testing.T) {
	cart := ReconstructCart("c-1", "u-1")
	product := pricedProduct("p-1", money.MustNew(10, 1), 1)
	item := ReconstructCartItem("i-1", "c-1", "p-1", 4, now)

	require.NoError(t, Remove(cart, product, item, RemovedByCustomer, now))
	assert.Equal(t, int64(5), product.Stock())
	assert.Equal(t, ItemDeleted, item.State())

	assert.ErrorIs(t, Remove(cart, product, item, RemovedByCustomer, now), ErrCartItemNotFound)
	assert.Equal(t, int64(5), product.Stock())

	foreign := ReconstructCartItem("i-2", "c-2", "p-1", 1, now)
	assert.ErrorIs(t, Remove(cart, product, foreign, RemovedByCustomer, now), ErrCartItemNotFound)
}

func TestCheckout(t *testing.T) {
	cart := ReconstructCart("c-1", "u-1")
	ten := pricedProduct("p-1", money.MustNew(10, 1), 8)
	five := pricedProduct("p-2", money.MustNew(5, 1), 4)
	lines := []CheckoutLine{
		{Item: ReconstructCartItem("i-1", "c-1", "p-1", 2, now), Product: ten},
		{Item: ReconstructCartItem("i-2", "c-1", "p-2", 1, now), Product: five},
	}

	order, err := Checkout(cart, lines, "o-1", "u-1", now)
	require.NoError(t, err)

	assert.Equal(t, "25.00", order.Total.String())
	assert.Equal(t, OrderStatusCompleted, order.Status)
	assert.Equal(t, "u-1", order.UserID)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, int64(1), order.Lines[0].LineNo)
	assert.Equal(t, "Product p-1", order.Lines[0].ProductName)
	assert.Equal(t, int64(2), order.Lines[0].Quantity)
	assert.True(t, order.Lines[0].UnitPrice.Equals(money.MustNew(10, 1)))
	assert.Equal(t, "p-2", order.Lines[1].ProductID)
	assert.True(t, order.Lines[1].Subtotal().Equals(money.MustNew(5, 1)))

	for _, l := range lines {
		assert.Equal(t, ItemDeleted, l.Item.State())
	}
	assert.Equal(t, int64(8), ten.Stock())
	assert.Equal(t, int64(4), five.Stock())
	assert.False(t, ten.StockChanged())

	events := cart.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.placed", events[0].EventType())
	assert.Equal(t, "o-1", events[0].AggregateID())
}

func TestCheckout_EmptyCart(t *testing.T) {
	order, err := Checkout(ReconstructCart("c-1", "u-1"), nil, "o-1", "u-1", now)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, order)
}

func TestCheckout_UnpricedProductBlocksWholeCart(t *testing.T) {
	cart := ReconstructCart("c-1", "u-1")
	lines := []CheckoutLine{
		{Item: ReconstructCartItem("i-1", "c-1", "p-1", 1, now), Product: pricedProduct("p-1", money.MustNew(3, 1), 1)},
		{Item: ReconstructCartItem("i-2", "c-1", "p-2", 1, now), Product: ReconstructProduct("p-2", "Cleared", nil, 0, false, 4)},
	}

	_, err := Checkout(cart, lines, "o-1", "u-1", now)
	assert.ErrorIs(t, err, ErrProductUnpriced)
	assert.Contains(t, err.Error(), "Cleared")
	for _, l := range lines {
		assert.NotEqual(t, ItemDeleted, l.Item.State())
	}
	assert.Empty(t, cart.DomainEvents())
}

// Random sequences of ledger operations keep free stock plus reserved
// quantities equal to the initial stock.
func TestLedger_ConservesStock(t *testing.T) {
	const initial = int64(20)
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		product := pricedProduct("p-1", money.MustNew(1, 1), initial)
		carts := []*Cart{ReconstructCart("c-0", "u-0"), ReconstructCart("c-1", "u-1"), ReconstructCart("c-2", "u-2")}
		items := map[string]*CartItem{}

		for step := 0; step < 40; step++ {
			cart := carts[rng.Intn(len(carts))]
			item := items[cart.ID()]
			qty := int64(rng.Intn(8))

			switch rng.Intn(3) {
			case 0:
				if got, err := AddOrIncrement(cart, product, item, qty, fmt.Sprintf("i-%s", cart.ID()), now); err == nil {
					items[cart.ID()] = got
				}
			case 1:
				if item != nil {
					_ = SetQuantity(cart, product, item, qty, now)
				}
			case 2:
				if item != nil && Remove(cart, product, item, RemovedByCustomer, now) == nil {
					delete(items, cart.ID())
				}
			}

			reserved := int64(0)
			for _, it := range items {
				reserved += it.Quantity()
			}
			require.GreaterOrEqual(t, product.Stock(), int64(0))
			require.Equal(t, initial, product.Stock()+reserved, "run %d step %d", run, step)
		}
	}
}
