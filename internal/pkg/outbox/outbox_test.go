package outbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pricedEvent struct {
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
}

func (e *pricedEvent) EventType() string   { return "product.priced" }
func (e *pricedEvent) AggregateID() string { return e.ProductID }

type brokenEvent struct {
	Ch chan int
}

func (e *brokenEvent) EventType() string   { return "broken" }
func (e *brokenEvent) AggregateID() string { return "x" }

func TestRepo_InsertMuts(t *testing.T) {
	repo := NewRepo()

	muts, err := repo.InsertMuts([]Event{
		&pricedEvent{ProductID: "p-1", Price: "10.00"},
		&pricedEvent{ProductID: "p-2", Price: "5.50"},
	})
	require.NoError(t, err)
	assert.Len(t, muts, 2)
}

func TestRepo_InsertMutRejectsUnserializableEvent(t *testing.T) {
	repo := NewRepo()

	_, err := repo.InsertMut(&brokenEvent{Ch: make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestListStatement(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		stmt := listStatement(Filter{})
		assert.Contains(t, stmt.SQL, "FROM outbox_events ORDER BY created_at DESC LIMIT @limit")
		assert.Equal(t, int64(defaultListLimit), stmt.Params["limit"])
	})

	t.Run("filters and clamped limit", func(t *testing.T) {
		stmt := listStatement(Filter{EventType: "order.placed", Status: "pending", Limit: 10000})
		assert.Contains(t, stmt.SQL, "WHERE event_type = @p0 AND status = @p1")
		assert.Equal(t, "order.placed", stmt.Params["p0"])
		assert.Equal(t, "pending", stmt.Params["p1"])
		assert.Equal(t, int64(maxListLimit), stmt.Params["limit"])
	})
}
