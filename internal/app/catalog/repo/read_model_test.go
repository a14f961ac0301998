package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
)

func TestCatalogStatement(t *testing.T) {
	stmt := catalogStatement(contracts.CatalogFilter{})
	assert.Contains(t, stmt.SQL, "p.visible = TRUE AND p.stock > 0")
	assert.Contains(t, stmt.SQL, "ORDER BY p.created_at DESC")
	assert.Equal(t, int64(defaultPageSize), stmt.Params["limit"])
	assert.NotContains(t, stmt.Params, "category")

	stmt = catalogStatement(contracts.CatalogFilter{CategoryID: "sweets", Search: " choc ", Limit: 1000})
	assert.Contains(t, stmt.SQL, "c.parent_id = @category")
	assert.Contains(t, stmt.SQL, "LOWER(@search)")
	assert.Equal(t, "sweets", stmt.Params["category"])
	assert.Equal(t, "choc", stmt.Params["search"])
	assert.Equal(t, int64(maxPageSize), stmt.Params["limit"])
}

func TestBuildCategoryTree(t *testing.T) {
	tree := buildCategoryTree([]*domain.Category{
		{ID: "c1", Name: "Appliances", ParentID: "p1"},
		{ID: "p1", Name: "Home"},
		{ID: "p2", Name: "Toys"},
		{ID: "c2", Name: "Kids", ParentID: "p2"},
		{ID: "c3", Name: "Orphan", ParentID: "gone"},
	})

	require.Len(t, tree, 3)
	assert.Equal(t, "Home", tree[0].Name)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Equal(t, "Appliances", tree[0].Subcategories[0].Name)
	assert.Equal(t, "Kids", tree[1].Subcategories[0].Name)
	assert.Equal(t, "Orphan", tree[2].Name)
}
