package list_inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

func TestListInventory(t *testing.T) {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	store := catalogtest.NewStore()
	store.PutProduct("a", catalogtest.ProductRow{Name: "Unpriced", Stock: 4, CreatedAt: base})
	store.PutProduct("b", catalogtest.ProductRow{Name: "Sold out", Price: money.MustNew(2, 1), Visible: true, CreatedAt: base.Add(time.Hour)})
	q := NewQuery(store.ReadModel())

	all, err := q.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ProductID)

	rest, err := q.Execute(context.Background(), &Request{Offset: 1})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "a", rest[0].ProductID)
}
