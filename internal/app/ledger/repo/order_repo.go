package repo

import (
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	"github.com/light-bringer/backoffice-service/internal/models/m_order"
	"github.com/light-bringer/backoffice-service/internal/models/m_order_line"
)

// OrderRepo implements contracts.OrderRepository.
type OrderRepo struct {
	orders *m_order.Model
	lines  *m_order_line.Model
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo() contracts.OrderRepository {
	return &OrderRepo{
		orders: m_order.NewModel(),
		lines:  m_order_line.NewModel(),
	}
}

// InsertMuts returns the order row followed by one row per line.
func (r *OrderRepo) InsertMuts(order *domain.Order) ([]*spanner.Mutation, error) {
	totalNum, totalDen, err := order.Total.Parts()
	if err != nil {
		return nil, fmt.Errorf("order total: %w", err)
	}

	muts := make([]*spanner.Mutation, 0, len(order.Lines)+1)
	muts = append(muts, r.orders.InsertMut(&m_order.Data{
		OrderID:          order.ID,
		UserID:           order.UserID,
		TotalNumerator:   totalNum,
		TotalDenominator: totalDen,
		Status:           order.Status,
		CreatedBy:        spanner.NullString{StringVal: order.CreatedBy, Valid: order.CreatedBy != ""},
		CreatedAt:        order.CreatedAt,
	}))

	for _, line := range order.Lines {
		num, den, err := line.UnitPrice.Parts()
		if err != nil {
			return nil, fmt.Errorf("unit price of %s: %w", line.ProductID, err)
		}
		muts = append(muts, r.lines.InsertMut(&m_order_line.Data{
			OrderID:              order.ID,
			LineNo:               line.LineNo,
			ProductID:            line.ProductID,
			ProductName:          line.ProductName,
			Quantity:             line.Quantity,
			UnitPriceNumerator:   num,
			UnitPriceDenominator: den,
		}))
	}

	return muts, nil
}
