package list_unpriced

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

func TestListUnpriced_OldestFirst(t *testing.T) {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	store := catalogtest.NewStore()
	store.PutProduct("b", catalogtest.ProductRow{Name: "Newer", Stock: 1, CreatedAt: base.Add(time.Minute)})
	store.PutProduct("a", catalogtest.ProductRow{Name: "Older", Stock: 1, CreatedAt: base})
	store.PutProduct("c", catalogtest.ProductRow{Name: "Priced", Stock: 1, Price: money.MustNew(1, 1), Visible: true, CreatedAt: base})

	products, err := NewQuery(store.ReadModel()).Execute(context.Background(), &Request{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "a", products[0].ProductID)
	assert.Equal(t, "b", products[1].ProductID)
}
