package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

const cartLinesSQL = `SELECT ci.item_id, ci.product_id, p.name, p.price_numerator, p.price_denominator, ci.quantity, ci.added_at
FROM cart_items ci
JOIN products p ON p.product_id = ci.product_id
WHERE ci.cart_id = @cartID
ORDER BY ci.added_at, ci.item_id`

// ReadModelImpl implements contracts.ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
	carts  contracts.CartRepository
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client, carts contracts.CartRepository) contracts.ReadModel {
	return &ReadModelImpl{client: client, carts: carts}
}

// GetCart returns the user's cart with line subtotals and totals.
// Cart and lines are read from one snapshot.
func (rm *ReadModelImpl) GetCart(ctx context.Context, userID string) (*contracts.CartDTO, error) {
	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	dto := &contracts.CartDTO{Lines: []*contracts.CartLineDTO{}, Total: money.Zero()}

	cart, err := rm.carts.FindByUser(ctx, txn, userID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return dto, nil
	}
	if err != nil {
		return nil, err
	}
	dto.CartID = cart.ID()

	iter := txn.Query(ctx, spanner.Statement{SQL: cartLinesSQL, Params: map[string]interface{}{"cartID": cart.ID()}})
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
		}

		var (
			itemID, productID, name string
			priceNum, priceDen      spanner.NullInt64
			quantity                int64
			addedAt                 time.Time
		)
		if err := row.Columns(&itemID, &productID, &name, &priceNum, &priceDen, &quantity, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to parse cart line: %w", err)
		}

		price, err := money.FromNullable(priceNum.Int64, priceDen.Int64, priceNum.Valid && priceDen.Valid)
		if err != nil {
			return nil, fmt.Errorf("invalid price for product %s: %w", productID, err)
		}

		line := &contracts.CartLineDTO{
			ItemID:      itemID,
			ProductID:   productID,
			ProductName: name,
			UnitPrice:   price,
			Quantity:    quantity,
			AddedAt:     addedAt,
		}
		if price != nil {
			line.Subtotal = price.MultiplyInt(quantity)
			dto.Total = dto.Total.Add(line.Subtotal)
		}

		dto.Lines = append(dto.Lines, line)
		dto.ItemCount += quantity
	}

	return dto, nil
}
