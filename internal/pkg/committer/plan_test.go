package committer

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan_AddIgnoresNil(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(nil)
	assert.True(t, plan.IsEmpty())

	plan.Add(spanner.Delete("cart_items", spanner.Key{"item-1"}))
	assert.False(t, plan.IsEmpty())
	assert.Equal(t, 1, plan.Count())
}

func TestCommitPlan_AddMultiple(t *testing.T) {
	plan := NewPlan()
	plan.AddMultiple([]*spanner.Mutation{
		spanner.Delete("cart_items", spanner.Key{"item-1"}),
		nil,
		spanner.Update("products", []string{"product_id", "stock"}, []interface{}{"p-1", int64(3)}),
	})

	assert.Equal(t, 2, plan.Count())
	assert.Len(t, plan.Mutations(), 2)
}
