package m_order

// Field name constants for the orders table.
const (
	TableName = "orders"

	OrderID          = "order_id"
	UserID           = "user_id"
	TotalNumerator   = "total_numerator"
	TotalDenominator = "total_denominator"
	Status           = "status"
	CreatedBy        = "created_by"
	CreatedAt        = "created_at"
)

// Order status values.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Columns lists every column in Data order.
var Columns = []string{
	OrderID,
	UserID,
	TotalNumerator,
	TotalDenominator,
	Status,
	CreatedBy,
	CreatedAt,
}
