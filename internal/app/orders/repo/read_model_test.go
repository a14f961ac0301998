package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/light-bringer/backoffice-service/internal/app/orders/contracts"
)

func TestListOrdersStatement(t *testing.T) {
	t.Run("customer history", func(t *testing.T) {
		stmt := listOrdersStatement(contracts.OrderFilter{UserID: "u1", Limit: 5, Offset: 10})
		assert.Contains(t, stmt.SQL, "WHERE user_id = @user")
		assert.Contains(t, stmt.SQL, "ORDER BY o.created_at DESC, o.order_id, l.line_no")
		assert.Equal(t, "u1", stmt.Params["user"])
		assert.Equal(t, int64(5), stmt.Params["limit"])
		assert.Equal(t, int64(10), stmt.Params["offset"])
	})

	t.Run("all orders", func(t *testing.T) {
		stmt := listOrdersStatement(contracts.OrderFilter{Limit: 10000})
		assert.NotContains(t, stmt.SQL, "@user")
		assert.Equal(t, int64(maxPageSize), stmt.Params["limit"])
	})

	t.Run("default page", func(t *testing.T) {
		stmt := listOrdersStatement(contracts.OrderFilter{})
		assert.Equal(t, int64(defaultPageSize), stmt.Params["limit"])
	})
}
