package changes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	tr := NewTracker()
	assert.False(t, tr.HasChanges())

	tr.MarkDirty("role")
	tr.MarkDirty("role")
	tr.MarkDirty("active")

	assert.True(t, tr.Dirty("role"))
	assert.False(t, tr.Dirty("name"))
	assert.ElementsMatch(t, []string{"role", "active"}, tr.DirtyFields())

	tr.Clear()
	assert.False(t, tr.HasChanges())
}
