package list_catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

func seeded() *catalogtest.Store {
	store := catalogtest.NewStore()
	store.PutCategory(domain.Category{ID: "sweets", Name: "Sweets & Gifts"})
	store.PutCategory(domain.Category{ID: "choc", Name: "Sweets", ParentID: "sweets"})
	store.PutCategory(domain.Category{ID: "jam", Name: "Preserves", ParentID: "sweets"})
	store.PutCategory(domain.Category{ID: "toys", Name: "Toys"})
	store.PutCategory(domain.Category{ID: "kids", Name: "Kids' Toys", ParentID: "toys"})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	price := money.MustNew(5, 1)
	store.PutProduct("dark", catalogtest.ProductRow{Name: "Dark chocolate", Price: price, Stock: 3, CategoryID: "choc", Visible: true, CreatedAt: base})
	store.PutProduct("fig", catalogtest.ProductRow{Name: "Fig jam", Price: price, Stock: 2, CategoryID: "jam", Visible: true, CreatedAt: base.Add(time.Hour)})
	store.PutProduct("kite", catalogtest.ProductRow{Name: "Kite", Price: price, Stock: 1, CategoryID: "kids", Visible: true, CreatedAt: base.Add(2 * time.Hour)})
	store.PutProduct("soldout", catalogtest.ProductRow{Name: "Milk chocolate", Price: price, Stock: 0, CategoryID: "choc", Visible: true, CreatedAt: base})
	store.PutProduct("new", catalogtest.ProductRow{Name: "White chocolate", Stock: 9, CategoryID: "choc", CreatedAt: base})
	return store
}

func ids(products []*contracts.ProductDTO) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ProductID)
	}
	return out
}

func TestListCatalog(t *testing.T) {
	q := NewQuery(seeded().ReadModel())
	ctx := context.Background()

	all, err := q.Execute(ctx, &Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"kite", "fig", "dark"}, ids(all))

	byParent, err := q.Execute(ctx, &Request{CategoryID: "sweets"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fig", "dark"}, ids(byParent))

	byLeaf, err := q.Execute(ctx, &Request{CategoryID: "choc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dark"}, ids(byLeaf))
	assert.Equal(t, "Sweets", byLeaf[0].CategoryName)

	searched, err := q.Execute(ctx, &Request{Search: "CHOC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dark"}, ids(searched))

	paged, err := q.Execute(ctx, &Request{Limit: 1, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, []string{"kite"}, ids(paged))
}
