package shop

import (
	shopv1 "github.com/light-bringer/backoffice-service/api/shop/v1"
	ledgercontracts "github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	ledgerdomain "github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

func moneyString(m *money.Money) string {
	if m == nil {
		return ""
	}
	return m.String()
}

func cartToProto(dto *ledgercontracts.CartDTO) *shopv1.Cart {
	out := &shopv1.Cart{
		CartID:    dto.CartID,
		Lines:     make([]shopv1.CartLine, 0, len(dto.Lines)),
		ItemCount: dto.ItemCount,
		Total:     moneyString(dto.Total),
	}
	for _, l := range dto.Lines {
		out.Lines = append(out.Lines, shopv1.CartLine{
			ItemID:      l.ItemID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   moneyString(l.UnitPrice),
			Quantity:    l.Quantity,
			Subtotal:    moneyString(l.Subtotal),
		})
	}
	return out
}

func orderToProto(o *ledgerdomain.Order) *shopv1.Order {
	out := &shopv1.Order{
		OrderID:   o.ID,
		Status:    o.Status,
		Total:     moneyString(o.Total),
		CreatedAt: o.CreatedAt,
		Lines:     make([]shopv1.OrderLine, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, shopv1.OrderLine{
			LineNo:      l.LineNo,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   moneyString(l.UnitPrice),
			Subtotal:    moneyString(l.Subtotal()),
		})
	}
	return out
}
