// Package ledgertest provides an in-memory ledger store for use case tests.
//
// Store implements every ledger repository contract and contracts.TxRunner.
// Writes requested through the repositories are staged and applied only when
// the transaction function returns nil, so failed use cases leave the store
// untouched exactly like a rolled back Spanner transaction.
package ledgertest

import (
	"context"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

// ProductRow is a stored product.
type ProductRow struct {
	Name    string
	Price   *money.Money
	Stock   int64
	Visible bool
	Version int64
}

// ItemRow is a stored cart item.
type ItemRow struct {
	CartID    string
	ProductID string
	Quantity  int64
	AddedAt   time.Time
}

// Store is an in-memory, transactional stand-in for Spanner.
type Store struct {
	mu       sync.Mutex
	products map[string]*ProductRow
	carts    map[string]string // cart id -> user id
	items    map[string]*ItemRow
	orders   []*domain.Order
	events   []outbox.Event
	pending  []func()
	commits  int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		products: map[string]*ProductRow{},
		carts:    map[string]string{},
		items:    map[string]*ItemRow{},
	}
}

// PutProduct stores or replaces a product.
func (s *Store) PutProduct(id string, row ProductRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := row
	s.products[id] = &r
}

// PutCart stores a cart for a user.
func (s *Store) PutCart(cartID, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[cartID] = userID
}

// PutItem stores a cart item.
func (s *Store) PutItem(itemID string, row ItemRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := row
	s.items[itemID] = &r
}

// Product returns a copy of a stored product.
func (s *Store) Product(id string) ProductRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.products[id]
}

// Items returns copies of the items of a cart keyed by item id.
func (s *Store) Items(cartID string) map[string]ItemRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]ItemRow{}
	for id, it := range s.items {
		if it.CartID == cartID {
			out[id] = *it
		}
	}
	return out
}

// CartOf returns the id of the user's cart, or "".
func (s *Store) CartOf(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartOf(userID)
}

func (s *Store) cartOf(userID string) string {
	for id, uid := range s.carts {
		if uid == userID {
			return id
		}
	}
	return ""
}

// Orders returns the committed orders.
func (s *Store) Orders() []*domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Order(nil), s.orders...)
}

// Events returns the committed events.
func (s *Store) Events() []outbox.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]outbox.Event(nil), s.events...)
}

// Commits returns how many transactions committed.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// RunInTx runs fn serialized against every other transaction.
func (s *Store) RunInTx(ctx context.Context, fn committer.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	if err := fn(ctx, nil, committer.NewPlan()); err != nil {
		s.pending = nil
		return err
	}
	for _, apply := range s.pending {
		apply()
	}
	s.pending = nil
	s.commits++
	return nil
}

func (s *Store) stage(apply func()) {
	s.pending = append(s.pending, apply)
}

// Products returns the product repository view of the store.
func (s *Store) Products() contracts.ProductRepository { return productRepo{s} }

// Carts returns the cart repository view of the store.
func (s *Store) Carts() contracts.CartRepository { return cartRepo{s} }

// OrderRepo returns the order repository view of the store.
func (s *Store) OrderRepo() contracts.OrderRepository { return orderRepo{s} }

// EventRepo returns the event repository view of the store.
func (s *Store) EventRepo() contracts.EventRepository { return eventRepo{s} }

type productRepo struct{ s *Store }

func (r productRepo) Get(_ context.Context, _ query.Reader, id string) (*domain.Product, error) {
	row, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return domain.ReconstructProduct(id, row.Name, row.Price.Copy(), row.Stock, row.Visible, row.Version), nil
}

func (r productRepo) GetMany(ctx context.Context, rd query.Reader, ids []string) (map[string]*domain.Product, error) {
	out := map[string]*domain.Product{}
	for _, id := range ids {
		if p, err := r.Get(ctx, rd, id); err == nil {
			out[id] = p
		}
	}
	return out, nil
}

func (r productRepo) StockMut(p *domain.Product) *spanner.Mutation {
	if !p.StockChanged() {
		return nil
	}
	id, stock, version := p.ID(), p.Stock(), p.Version()
	r.s.stage(func() {
		row := r.s.products[id]
		row.Stock = stock
		row.Version = version
	})
	return spanner.Update("products", []string{"product_id", "stock", "version"}, []interface{}{id, stock, version})
}

type cartRepo struct{ s *Store }

func (r cartRepo) FindByUser(_ context.Context, _ query.Reader, userID string) (*domain.Cart, error) {
	id := r.s.cartOf(userID)
	if id == "" {
		return nil, domain.ErrCartNotFound
	}
	return domain.ReconstructCart(id, userID), nil
}

func (r cartRepo) Get(_ context.Context, _ query.Reader, cartID string) (*domain.Cart, error) {
	userID, ok := r.s.carts[cartID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return domain.ReconstructCart(cartID, userID), nil
}

func (r cartRepo) InsertMut(cart *domain.Cart) *spanner.Mutation {
	if !cart.IsNew() {
		return nil
	}
	id, userID := cart.ID(), cart.UserID()
	r.s.stage(func() { r.s.carts[id] = userID })
	return spanner.Insert("carts", []string{"cart_id", "user_id"}, []interface{}{id, userID})
}

func (r cartRepo) FindItem(_ context.Context, _ query.Reader, cartID, productID string) (*domain.CartItem, error) {
	for id, it := range r.s.items {
		if it.CartID == cartID && it.ProductID == productID {
			return domain.ReconstructCartItem(id, it.CartID, it.ProductID, it.Quantity, it.AddedAt), nil
		}
	}
	return nil, domain.ErrCartItemNotFound
}

func (r cartRepo) GetItem(_ context.Context, _ query.Reader, itemID string) (*domain.CartItem, error) {
	it, ok := r.s.items[itemID]
	if !ok {
		return nil, domain.ErrCartItemNotFound
	}
	return domain.ReconstructCartItem(itemID, it.CartID, it.ProductID, it.Quantity, it.AddedAt), nil
}

func (r cartRepo) ListItems(_ context.Context, _ query.Reader, cartID string) ([]*domain.CartItem, error) {
	var out []*domain.CartItem
	for id, it := range r.s.items {
		if it.CartID == cartID {
			out = append(out, domain.ReconstructCartItem(id, it.CartID, it.ProductID, it.Quantity, it.AddedAt))
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].AddedAt().Equal(out[b].AddedAt()) {
			return out[a].ID() < out[b].ID()
		}
		return out[a].AddedAt().Before(out[b].AddedAt())
	})
	return out, nil
}

func (r cartRepo) ItemMut(item *domain.CartItem) *spanner.Mutation {
	id := item.ID()
	switch item.State() {
	case domain.ItemCreated:
		row := ItemRow{CartID: item.CartID(), ProductID: item.ProductID(), Quantity: item.Quantity(), AddedAt: item.AddedAt()}
		r.s.stage(func() { r.s.items[id] = &row })
		return spanner.Insert("cart_items", []string{"item_id"}, []interface{}{id})
	case domain.ItemUpdated:
		qty := item.Quantity()
		r.s.stage(func() { r.s.items[id].Quantity = qty })
		return spanner.Update("cart_items", []string{"item_id", "quantity"}, []interface{}{id, qty})
	case domain.ItemDeleted:
		r.s.stage(func() { delete(r.s.items, id) })
		return spanner.Delete("cart_items", spanner.Key{id})
	default:
		return nil
	}
}

func (r cartRepo) ListAbandoned(_ context.Context, cutoff time.Time) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := map[string]bool{}
	var ids []string
	for _, it := range r.s.items {
		if it.AddedAt.Before(cutoff) && !seen[it.CartID] {
			seen[it.CartID] = true
			ids = append(ids, it.CartID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type orderRepo struct{ s *Store }

func (r orderRepo) InsertMuts(order *domain.Order) ([]*spanner.Mutation, error) {
	if _, _, err := order.Total.Parts(); err != nil {
		return nil, err
	}
	r.s.stage(func() { r.s.orders = append(r.s.orders, order) })
	return []*spanner.Mutation{spanner.Insert("orders", []string{"order_id"}, []interface{}{order.ID})}, nil
}

type eventRepo struct{ s *Store }

func (r eventRepo) InsertMuts(events []outbox.Event) ([]*spanner.Mutation, error) {
	evs := append([]outbox.Event(nil), events...)
	r.s.stage(func() { r.s.events = append(r.s.events, evs...) })
	muts := make([]*spanner.Mutation, 0, len(evs))
	for _, e := range evs {
		muts = append(muts, spanner.Insert("outbox_events", []string{"event_id"}, []interface{}{e.AggregateID()}))
	}
	return muts, nil
}
