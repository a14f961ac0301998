package list_categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/usecases/seed_categories"
)

func TestListCategories_Tree(t *testing.T) {
	store := catalogtest.NewStore()
	_, err := seed_categories.NewInteractor(store.CategoryRepo(), store).Execute(context.Background(), &seed_categories.Request{})
	require.NoError(t, err)

	tree, err := NewQuery(store.ReadModel()).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 3)

	children := map[string]int{}
	for _, root := range tree {
		children[root.Name] = len(root.Subcategories)
	}
	assert.Equal(t, map[string]int{
		"Home Appliances & Household": 2,
		"Sweets & Gifts":              3,
		"Toys":                        1,
	}, children)
}
