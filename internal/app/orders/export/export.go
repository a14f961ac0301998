// Package export renders order history as spreadsheets, one row per order
// line.
package export

import (
	"io"
	"strings"

	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
)

// Format selects the output encoding.
type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

const timeLayout = "2006-01-02 15:04:05"

// Header is the first row of every export.
var Header = []string{
	"order_id", "created_at", "username", "user_id", "status",
	"product_id", "product_name", "quantity", "unit_price", "subtotal", "order_total",
}

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, XLSX:
		return f, nil
	case "":
		return CSV, nil
	default:
		return "", domain.ErrUnsupportedFormat
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns a download name for the export.
func (f Format) Filename() string {
	return "orders." + string(f)
}

// Writer receives orders one at a time. Nothing is guaranteed to reach
// the underlying io.Writer before Close.
type Writer interface {
	WriteOrder(order *domain.Order) error
	Close() error
}

// NewWriter creates a Writer for f. The header row is written first.
func NewWriter(f Format, w io.Writer) (Writer, error) {
	switch f {
	case CSV:
		return newCSVWriter(w)
	case XLSX:
		return newXLSXWriter(w)
	default:
		return nil, domain.ErrUnsupportedFormat
	}
}

// rows flattens an order into export rows. An order without lines still
// produces one row.
func rows(o *domain.Order) []row {
	base := row{
		OrderID:   o.ID,
		CreatedAt: o.CreatedAt.UTC().Format(timeLayout),
		Username:  o.Username,
		UserID:    o.UserID,
		Status:    o.Status,
		Total:     o.Total.String(),
	}
	if len(o.Lines) == 0 {
		return []row{base}
	}

	out := make([]row, 0, len(o.Lines))
	for _, l := range o.Lines {
		r := base
		r.ProductID = l.ProductID
		r.ProductName = l.ProductName
		r.Quantity = l.Quantity
		r.UnitPrice = l.UnitPrice.String()
		r.Subtotal = l.Subtotal().String()
		r.hasLine = true
		out = append(out, r)
	}
	return out
}

type row struct {
	OrderID     string
	CreatedAt   string
	Username    string
	UserID      string
	Status      string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   string
	Subtotal    string
	Total       string
	hasLine     bool
}
