package ledgertest

import (
	"context"
	"sort"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// ReadModel returns a contracts.ReadModel that answers from the store.
func (s *Store) ReadModel() contracts.ReadModel { return readModel{s} }

type readModel struct{ s *Store }

func (r readModel) GetCart(_ context.Context, userID string) (*contracts.CartDTO, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	dto := &contracts.CartDTO{Lines: []*contracts.CartLineDTO{}, Total: money.Zero()}
	dto.CartID = r.s.cartOf(userID)
	if dto.CartID == "" {
		return dto, nil
	}

	for id, it := range r.s.items {
		if it.CartID != dto.CartID {
			continue
		}
		line := &contracts.CartLineDTO{
			ItemID:    id,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			AddedAt:   it.AddedAt,
		}
		if p, ok := r.s.products[it.ProductID]; ok {
			line.ProductName = p.Name
			line.UnitPrice = p.Price.Copy()
		}
		if line.UnitPrice != nil {
			line.Subtotal = line.UnitPrice.MultiplyInt(it.Quantity)
			dto.Total = dto.Total.Add(line.Subtotal)
		}
		dto.Lines = append(dto.Lines, line)
		dto.ItemCount += it.Quantity
	}

	sort.Slice(dto.Lines, func(i, j int) bool {
		a, b := dto.Lines[i], dto.Lines[j]
		if !a.AddedAt.Equal(b.AddedAt) {
			return a.AddedAt.Before(b.AddedAt)
		}
		return a.ItemID < b.ItemID
	})
	return dto, nil
}
