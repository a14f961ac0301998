// Package catalogtest provides an in-memory catalog store for use case tests.
//
// Writes made through the repositories are staged and applied only when the
// transaction function returns nil.
package catalogtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

// ProductRow is a stored product.
type ProductRow struct {
	Name        string
	Description string
	Price       *money.Money
	Stock       int64
	CategoryID  string
	ExpiresOn   *civil.Date
	Visible     bool
	Version     int64
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time
}

// Store is an in-memory, transactional stand-in for Spanner.
type Store struct {
	mu         sync.Mutex
	products   map[string]*ProductRow
	categories map[string]*domain.Category
	history    []*domain.PriceChange
	events     []outbox.Event
	pending    []func()
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		products:   map[string]*ProductRow{},
		categories: map[string]*domain.Category{},
	}
}

// PutProduct stores or replaces a product.
func (s *Store) PutProduct(id string, row ProductRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := row
	s.products[id] = &r
}

// PutCategory stores a category.
func (s *Store) PutCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = &c
}

// Product returns a copy of a stored product and whether it exists.
func (s *Store) Product(id string) (ProductRow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.products[id]
	if !ok {
		return ProductRow{}, false
	}
	return *r, true
}

// Categories returns the stored categories ordered by name.
func (s *Store) Categories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// History returns the committed price changes.
func (s *Store) History() []*domain.PriceChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.PriceChange(nil), s.history...)
}

// Events returns the committed events.
func (s *Store) Events() []outbox.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]outbox.Event(nil), s.events...)
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
	return nil
}

func (s *Store) stage(apply func()) {
	s.pending = append(s.pending, apply)
}

// Products returns the product repository view of the store.
func (s *Store) Products() contracts.ProductRepository { return productRepo{s} }

// CategoryRepo returns the category repository view of the store.
func (s *Store) CategoryRepo() contracts.CategoryRepository { return categoryRepo{s} }

// HistoryRepo returns the price history repository view of the store.
func (s *Store) HistoryRepo() contracts.PriceHistoryRepository { return historyRepo{s} }

// EventRepo returns the event repository view of the store.
func (s *Store) EventRepo() contracts.EventRepository { return eventRepo{s} }

type productRepo struct{ s *Store }

func (r productRepo) Get(_ context.Context, _ query.Reader, id string) (*domain.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return domain.ReconstructProduct(id, p.Name, p.Description, p.Price.Copy(), p.Stock, p.CategoryID, p.ExpiresOn,
		p.Version, p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.CreatedAt), nil
}

func (r productRepo) InsertMut(p *domain.Product) (*spanner.Mutation, error) {
	id, row := p.ID(), toRow(p)
	r.s.stage(func() { r.s.products[id] = &row })
	return spanner.Insert("products", []string{"product_id"}, []interface{}{id}), nil
}

func (r productRepo) UpdateMut(p *domain.Product) (*spanner.Mutation, error) {
	if !p.Changes().HasChanges() {
		return nil, nil
	}
	id, row := p.ID(), toRow(p)
	row.Version++
	r.s.stage(func() { r.s.products[id] = &row })
	return spanner.Update("products", []string{"product_id"}, []interface{}{id}), nil
}

func toRow(p *domain.Product) ProductRow {
	return ProductRow{
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		Stock:       p.Stock(),
		CategoryID:  p.CategoryID(),
		ExpiresOn:   p.ExpiresOn(),
		Visible:     p.Visible(),
		Version:     p.Version(),
		CreatedBy:   p.CreatedBy(),
		UpdatedBy:   p.UpdatedBy(),
		CreatedAt:   p.CreatedAt(),
	}
}

type categoryRepo struct{ s *Store }

func (r categoryRepo) Get(_ context.Context, _ query.Reader, id string) (*domain.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r categoryRepo) List(context.Context, query.Reader) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r categoryRepo) InsertMut(c *domain.Category) *spanner.Mutation {
	cp := *c
	r.s.stage(func() { r.s.categories[cp.ID] = &cp })
	return spanner.Insert("categories", []string{"category_id"}, []interface{}{cp.ID})
}

type historyRepo struct{ s *Store }

func (r historyRepo) InsertMut(change *domain.PriceChange) (*spanner.Mutation, error) {
	r.s.stage(func() { r.s.history = append(r.s.history, change) })
	return spanner.Insert("price_history", []string{"product_id"}, []interface{}{change.ProductID}), nil
}

type eventRepo struct{ s *Store }

func (r eventRepo) InsertMuts(events []outbox.Event) ([]*spanner.Mutation, error) {
	evs := append([]outbox.Event(nil), events...)
	r.s.stage(func() { r.s.events = append(r.s.events, evs...) })
	muts := make([]*spanner.Mutation, 0, len(evs))
	for _, e := range evs {
		muts = append(muts, spanner.Insert("outbox_events", []string{"aggregate_id"}, []interface{}{e.AggregateID()}))
	}
	return muts, nil
}
