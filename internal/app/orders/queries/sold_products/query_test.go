package sold_products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/app/orders/orderstest"
)

func TestSoldProducts(t *testing.T) {
	sold, err := NewQuery(orderstest.NewReadModel(orderstest.Sample()...)).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, sold, 2)

	assert.Equal(t, "p2", sold[0].ProductID)
	assert.Equal(t, int64(4), sold[0].Units)
	assert.Equal(t, "22.00", sold[0].Revenue.String())

	assert.Equal(t, "p1", sold[1].ProductID)
	assert.Equal(t, int64(3), sold[1].Units)
	assert.Equal(t, "30.00", sold[1].Revenue.String())
}
