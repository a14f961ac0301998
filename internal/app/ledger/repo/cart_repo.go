package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	"github.com/light-bringer/backoffice-service/internal/models/m_cart"
	"github.com/light-bringer/backoffice-service/internal/models/m_cart_item"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

// CartRepo implements contracts.CartRepository for Spanner.
type CartRepo struct {
	client    *spanner.Client
	carts     *m_cart.Model
	cartItems *m_cart_item.Model
}

// NewCartRepo creates a new CartRepo.
func NewCartRepo(client *spanner.Client) contracts.CartRepository {
	return &CartRepo{
		client:    client,
		carts:     m_cart.NewModel(),
		cartItems: m_cart_item.NewModel(),
	}
}

// FindByUser returns the user's cart.
func (r *CartRepo) FindByUser(ctx context.Context, rd query.Reader, userID string) (*domain.Cart, error) {
	stmt := query.From(m_cart.TableName).
		Select(m_cart.CartID, m_cart.UserID).
		Where(query.Eq(m_cart.UserID, userID)).
		Limit(1).
		Build()

	return r.firstCart(ctx, rd, stmt)
}

// Get returns a cart by id.
func (r *CartRepo) Get(ctx context.Context, rd query.Reader, cartID string) (*domain.Cart, error) {
	row, err := rd.ReadRow(ctx, m_cart.TableName, spanner.Key{cartID}, []string{m_cart.CartID, m_cart.UserID})
	if err != nil {
		if query.IsNotFound(err) {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var id, userID string
	if err := row.Columns(&id, &userID); err != nil {
		return nil, fmt.Errorf("failed to parse cart: %w", err)
	}
	return domain.ReconstructCart(id, userID), nil
}

func (r *CartRepo) firstCart(ctx context.Context, rd query.Reader, stmt spanner.Statement) (*domain.Cart, error) {
	iter := rd.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	var id, userID string
	if err := row.Columns(&id, &userID); err != nil {
		return nil, fmt.Errorf("failed to parse cart: %w", err)
	}
	return domain.ReconstructCart(id, userID), nil
}

// InsertMut stores a lazily created cart.
func (r *CartRepo) InsertMut(cart *domain.Cart) *spanner.Mutation {
	if !cart.IsNew() {
		return nil
	}
	return r.carts.InsertMut(&m_cart.Data{CartID: cart.ID(), UserID: cart.UserID()})
}

// FindItem returns the line for (cart, product).
func (r *CartRepo) FindItem(ctx context.Context, rd query.Reader, cartID, productID string) (*domain.CartItem, error) {
	stmt := query.From(m_cart_item.TableName).
		Select(m_cart_item.Columns...).
		Where(query.Eq(m_cart_item.CartID, cartID)).
		Where(query.Eq(m_cart_item.ProductID, productID)).
		Build()

	items, err := r.queryItems(ctx, rd, stmt)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrCartItemNotFound
	}
	return items[0], nil
}

// GetItem returns a line by id.
func (r *CartRepo) GetItem(ctx context.Context, rd query.Reader, itemID string) (*domain.CartItem, error) {
	row, err := rd.ReadRow(ctx, m_cart_item.TableName, spanner.Key{itemID}, m_cart_item.Columns)
	if err != nil {
		if query.IsNotFound(err) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to read cart item: %w", err)
	}

	var data m_cart_item.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse cart item: %w", err)
	}
	return dataToItem(&data), nil
}

// ListItems returns every line of a cart, oldest first.
func (r *CartRepo) ListItems(ctx context.Context, rd query.Reader, cartID string) ([]*domain.CartItem, error) {
	stmt := query.From(m_cart_item.TableName).
		Select(m_cart_item.Columns...).
		Where(query.Eq(m_cart_item.CartID, cartID)).
		OrderBy(m_cart_item.AddedAt, query.Asc).
		OrderBy(m_cart_item.ItemID, query.Asc).
		Build()

	return r.queryItems(ctx, rd, stmt)
}

// ItemMut persists the change recorded on the item.
func (r *CartRepo) ItemMut(item *domain.CartItem) *spanner.Mutation {
	switch item.State() {
	case domain.ItemCreated:
		return r.cartItems.InsertMut(&m_cart_item.Data{
			ItemID:    item.ID(),
			CartID:    item.CartID(),
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			AddedAt:   item.AddedAt(),
		})
	case domain.ItemUpdated:
		return r.cartItems.QuantityMut(item.ID(), item.Quantity())
	case domain.ItemDeleted:
		return r.cartItems.DeleteMut(item.ID())
	default:
		return nil
	}
}

// ListAbandoned returns carts holding any item added before cutoff.
func (r *CartRepo) ListAbandoned(ctx context.Context, cutoff time.Time) ([]string, error) {
	stmt := spanner.Statement{
		SQL: "SELECT DISTINCT " + m_cart_item.CartID + " FROM " + m_cart_item.TableName +
			" WHERE " + m_cart_item.AddedAt + " < @cutoff ORDER BY " + m_cart_item.CartID,
		Params: map[string]interface{}{"cutoff": cutoff},
	}

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var ids []string
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list abandoned carts: %w", err)
		}
		var id string
		if err := row.Columns(&id); err != nil {
			return nil, fmt.Errorf("failed to parse cart id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *CartRepo) queryItems(ctx context.Context, rd query.Reader, stmt spanner.Statement) ([]*domain.CartItem, error) {
	iter := rd.Query(ctx, stmt)
	defer iter.Stop()

	var items []*domain.CartItem
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate cart items: %w", err)
		}

		var data m_cart_item.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse cart item: %w", err)
		}
		items = append(items, dataToItem(&data))
	}
	return items, nil
}

func dataToItem(data *m_cart_item.Data) *domain.CartItem {
	return domain.ReconstructCartItem(data.ItemID, data.CartID, data.ProductID, data.Quantity, data.AddedAt)
}
