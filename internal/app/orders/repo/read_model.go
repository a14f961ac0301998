package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/backoffice-service/internal/app/orders/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

const orderColumns = `o.order_id, o.user_id, COALESCE(u.username, ''), o.status, o.total_numerator, o.total_denominator,
       COALESCE(o.created_by, ''), o.created_at,
       l.line_no, l.product_id, l.product_name, l.quantity, l.unit_price_numerator, l.unit_price_denominator`

const completedLinesSQL = `SELECT l.line_no, l.product_id, l.product_name, l.quantity, l.unit_price_numerator, l.unit_price_denominator
FROM orders o
JOIN order_lines l ON l.order_id = o.order_id
WHERE o.status = @status
ORDER BY o.created_at DESC, o.order_id, l.line_no`

const summarySQL = `SELECT
  (SELECT COUNT(*) FROM users WHERE role = 'customer'),
  (SELECT COUNT(*) FROM users WHERE role = 'warehouse'),
  (SELECT COUNT(*) FROM users WHERE role = 'admin'),
  (SELECT COUNT(*) FROM products),
  (SELECT COUNT(*) FROM products WHERE visible = TRUE),
  (SELECT COUNT(*) FROM products WHERE visible = FALSE),
  (SELECT COUNT(*) FROM products WHERE stock = 0),
  (SELECT COUNT(*) FROM orders)`

// ReadModel implements contracts.ReadModel for Spanner.
type ReadModel struct {
	client *spanner.Client
	clock  clock.Clock
}

// NewReadModel creates a new orders ReadModel.
func NewReadModel(client *spanner.Client, clk clock.Clock) contracts.ReadModel {
	return &ReadModel{client: client, clock: clk}
}

func (rm *ReadModel) ListOrders(ctx context.Context, filter contracts.OrderFilter) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := rm.scanOrders(ctx, rm.client.Single(), listOrdersStatement(filter), func(o *domain.Order) error {
		orders = append(orders, o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (rm *ReadModel) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	stmt := spanner.Statement{
		SQL: "SELECT " + orderColumns + `
FROM orders o
LEFT JOIN users u ON u.user_id = o.user_id
LEFT JOIN order_lines l ON l.order_id = o.order_id
WHERE o.order_id = @id
ORDER BY l.line_no`,
		Params: map[string]interface{}{"id": orderID},
	}

	var order *domain.Order
	err := rm.scanOrders(ctx, rm.client.Single(), stmt, func(o *domain.Order) error {
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (rm *ReadModel) EachOrder(ctx context.Context, fn func(*domain.Order) error) error {
	stmt := spanner.Statement{SQL: "SELECT " + orderColumns + `
FROM orders o
LEFT JOIN users u ON u.user_id = o.user_id
LEFT JOIN order_lines l ON l.order_id = o.order_id
ORDER BY o.created_at, o.order_id, l.line_no`}
	return rm.scanOrders(ctx, rm.client.Single(), stmt, fn)
}

func (rm *ReadModel) CompletedLines(ctx context.Context) ([]domain.Line, error) {
	stmt := spanner.Statement{SQL: completedLinesSQL, Params: map[string]interface{}{"status": domain.StatusCompleted}}
	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var lines []domain.Line
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query order lines: %w", err)
		}

		var (
			line     domain.Line
			num, den int64
		)
		if err := row.Columns(&line.LineNo, &line.ProductID, &line.ProductName, &line.Quantity, &num, &den); err != nil {
			return nil, fmt.Errorf("failed to parse order line: %w", err)
		}
		if line.UnitPrice, err = money.New(num, den); err != nil {
			return nil, fmt.Errorf("unit price of %s: %w", line.ProductID, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Summary reads every counter from one snapshot.
func (rm *ReadModel) Summary(ctx context.Context) (*domain.Summary, error) {
	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	s := &domain.Summary{Revenue: money.Zero(), GeneratedAt: rm.clock.Now()}

	iter := txn.Query(ctx, spanner.Statement{SQL: summarySQL})
	row, err := iter.Next()
	iter.Stop()
	if err != nil {
		return nil, fmt.Errorf("failed to read summary: %w", err)
	}
	if err := row.Columns(&s.Customers, &s.WarehouseClerks, &s.Admins,
		&s.Products, &s.VisibleProducts, &s.UnpricedProducts, &s.OutOfStock, &s.Orders); err != nil {
		return nil, fmt.Errorf("failed to parse summary: %w", err)
	}

	totals := txn.Query(ctx, spanner.Statement{
		SQL:    "SELECT total_numerator, total_denominator FROM orders WHERE status = @status",
		Params: map[string]interface{}{"status": domain.StatusCompleted},
	})
	defer totals.Stop()
	for {
		row, err := totals.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read order totals: %w", err)
		}
		var num, den int64
		if err := row.Columns(&num, &den); err != nil {
			return nil, fmt.Errorf("failed to parse order total: %w", err)
		}
		total, err := money.New(num, den)
		if err != nil {
			return nil, err
		}
		s.Revenue = s.Revenue.Add(total)
	}
	return s, nil
}

// scanOrders folds consecutive rows of one order into a single value.
// Rows must arrive grouped by order id.
func (rm *ReadModel) scanOrders(ctx context.Context, rd query.Reader, stmt spanner.Statement, fn func(*domain.Order) error) error {
	iter := rd.Query(ctx, stmt)
	defer iter.Stop()

	var current *domain.Order
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to query orders: %w", err)
		}

		var (
			orderID, userID, username, status, createdBy string
			totalNum, totalDen                           int64
			createdAt                                    time.Time
			lineNo, quantity, priceNum, priceDen         spanner.NullInt64
			productID, productName                       spanner.NullString
		)
		if err := row.Columns(&orderID, &userID, &username, &status, &totalNum, &totalDen, &createdBy, &createdAt,
			&lineNo, &productID, &productName, &quantity, &priceNum, &priceDen); err != nil {
			return fmt.Errorf("failed to parse order: %w", err)
		}

		if current == nil || current.ID != orderID {
			if current != nil {
				if err := fn(current); err != nil {
					return err
				}
			}
			total, err := money.New(totalNum, totalDen)
			if err != nil {
				return fmt.Errorf("total of order %s: %w", orderID, err)
			}
			current = &domain.Order{
				ID:        orderID,
				UserID:    userID,
				Username:  username,
				Status:    status,
				Total:     total,
				CreatedBy: createdBy,
				CreatedAt: createdAt,
			}
		}

		if !lineNo.Valid {
			continue
		}
		price, err := money.New(priceNum.Int64, priceDen.Int64)
		if err != nil {
			return fmt.Errorf("line %d of order %s: %w", lineNo.Int64, orderID, err)
		}
		current.Lines = append(current.Lines, domain.Line{
			LineNo:      lineNo.Int64,
			ProductID:   productID.StringVal,
			ProductName: productName.StringVal,
			Quantity:    quantity.Int64,
			UnitPrice:   price,
		})
	}

	if current != nil {
		return fn(current)
	}
	return nil
}

func listOrdersStatement(filter contracts.OrderFilter) spanner.Statement {
	params := map[string]interface{}{
		"limit":  pageSize(filter.Limit),
		"offset": filter.Offset,
	}

	inner := []string{"SELECT * FROM orders"}
	if filter.UserID != "" {
		inner = append(inner, "WHERE user_id = @user")
		params["user"] = filter.UserID
	}
	inner = append(inner, "ORDER BY created_at DESC, order_id LIMIT @limit OFFSET @offset")

	sql := "SELECT " + orderColumns + `
FROM (` + strings.Join(inner, " ") + `) o
LEFT JOIN users u ON u.user_id = o.user_id
LEFT JOIN order_lines l ON l.order_id = o.order_id
ORDER BY o.created_at DESC, o.order_id, l.line_no`
	return spanner.Statement{SQL: sql, Params: params}
}

func pageSize(limit int64) int64 {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
