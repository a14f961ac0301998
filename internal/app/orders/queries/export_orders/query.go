package export_orders

import (
	"context"
	"io"

	"github.com/light-bringer/backoffice-service/internal/app/orders/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
	"github.com/light-bringer/backoffice-service/internal/app/orders/export"
)

// Request selects the output format ("csv" or "xlsx").
type Request struct {
	Format string
}

// Query handles the order export.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new export orders query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute writes every order to w, oldest first. The format is resolved
// before anything is written so callers can set response headers first.
func (q *Query) Execute(ctx context.Context, req *Request, w io.Writer) (int, error) {
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return 0, err
	}
	return q.Write(ctx, format, w)
}

// Write exports in an already parsed format and returns the number of
// orders written.
func (q *Query) Write(ctx context.Context, format export.Format, w io.Writer) (int, error) {
	ew, err := export.NewWriter(format, w)
	if err != nil {
		return 0, err
	}

	count := 0
	err = q.readModel.EachOrder(ctx, func(o *domain.Order) error {
		count++
		return ew.WriteOrder(o)
	})
	if err != nil {
		return count, err
	}
	return count, ew.Close()
}
