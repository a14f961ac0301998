package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
)

type csvWriter struct {
	w *csv.Writer
}

func newCSVWriter(w io.Writer) (*csvWriter, error) {
	cw := &csvWriter{w: csv.NewWriter(w)}
	if err := cw.w.Write(Header); err != nil {
		return nil, err
	}
	return cw, nil
}

func (c *csvWriter) WriteOrder(order *domain.Order) error {
	for _, r := range rows(order) {
		quantity := ""
		if r.hasLine {
			quantity = strconv.FormatInt(r.Quantity, 10)
		}
		record := []string{
			r.OrderID, r.CreatedAt, r.Username, r.UserID, r.Status,
			r.ProductID, r.ProductName, quantity, r.UnitPrice, r.Subtotal, r.Total,
		}
		if err := c.w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (c *csvWriter) Close() error {
	c.w.Flush()
	return c.w.Error()
}
