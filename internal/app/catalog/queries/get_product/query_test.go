package get_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

func TestGetProduct(t *testing.T) {
	store := catalogtest.NewStore()
	store.PutProduct("priced", catalogtest.ProductRow{Name: "Mug", Price: money.MustNew(7, 1), Stock: 2, Visible: true})
	store.PutProduct("unpriced", catalogtest.ProductRow{Name: "Vase", Stock: 2})
	store.PutProduct("empty", catalogtest.ProductRow{Name: "Lamp", Price: money.MustNew(7, 1), Visible: true})
	q := NewQuery(store.ReadModel())
	ctx := context.Background()

	p, err := q.Execute(ctx, &Request{ProductID: "priced"})
	require.NoError(t, err)
	assert.Equal(t, "7.00", p.Price.String())

	for _, id := range []string{"unpriced", "empty", "missing", ""} {
		_, err = q.Execute(ctx, &Request{ProductID: id})
		assert.ErrorIs(t, err, domain.ErrProductNotFound, id)
	}

	hidden, err := q.Execute(ctx, &Request{ProductID: "unpriced", IncludeHidden: true})
	require.NoError(t, err)
	assert.Nil(t, hidden.Price)
	assert.False(t, hidden.Visible)
}
