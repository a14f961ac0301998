// Package orderstest provides an in-memory orders read model for tests.
package orderstest

import (
	"context"
	"sort"
	"sync"

	"github.com/light-bringer/backoffice-service/internal/app/orders/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// ReadModel answers order queries from memory.
type ReadModel struct {
	mu      sync.Mutex
	orders  []*domain.Order
	summary domain.Summary
}

var _ contracts.ReadModel = (*ReadModel)(nil)

// NewReadModel creates a ReadModel holding orders.
func NewReadModel(orders ...*domain.Order) *ReadModel {
	rm := &ReadModel{}
	for _, o := range orders {
		rm.Add(o)
	}
	return rm
}

// Add stores an order.
func (rm *ReadModel) Add(o *domain.Order) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.orders = append(rm.orders, o)
	sort.SliceStable(rm.orders, func(i, j int) bool {
		return rm.orders[i].CreatedAt.Before(rm.orders[j].CreatedAt)
	})
}

// SetCounts sets the non-order counters reported by Summary.
func (rm *ReadModel) SetCounts(s domain.Summary) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.summary = s
}

func (rm *ReadModel) ListOrders(_ context.Context, filter contracts.OrderFilter) ([]*domain.Order, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	var out []*domain.Order
	for i := len(rm.orders) - 1; i >= 0; i-- {
		o := rm.orders[i]
		if filter.UserID == "" || o.UserID == filter.UserID {
			out = append(out, o)
		}
	}
	if filter.Offset >= int64(len(out)) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < int64(len(out)) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (rm *ReadModel) GetOrder(_ context.Context, orderID string) (*domain.Order, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	for _, o := range rm.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (rm *ReadModel) EachOrder(_ context.Context, fn func(*domain.Order) error) error {
	rm.mu.Lock()
	orders := append([]*domain.Order(nil), rm.orders...)
	rm.mu.Unlock()

	for _, o := range orders {
		if err := fn(o); err != nil {
			return err
		}
	}
	return nil
}

func (rm *ReadModel) CompletedLines(context.Context) ([]domain.Line, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	var lines []domain.Line
	for i := len(rm.orders) - 1; i >= 0; i-- {
		if rm.orders[i].Status == domain.StatusCompleted {
			lines = append(lines, rm.orders[i].Lines...)
		}
	}
	return lines, nil
}

func (rm *ReadModel) Summary(context.Context) (*domain.Summary, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	s := rm.summary
	s.Orders = int64(len(rm.orders))
	s.Revenue = money.Zero()
	for _, o := range rm.orders {
		if o.Status == domain.StatusCompleted {
			s.Revenue = s.Revenue.Add(o.Total)
		}
	}
	return &s, nil
}
