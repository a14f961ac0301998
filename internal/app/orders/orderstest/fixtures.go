package orderstest

import (
	"time"

	"github.com/light-bringer/backoffice-service/internal/app/orders/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// Sample returns three completed orders: two by u1 and one by u2.
func Sample() []*domain.Order {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return []*domain.Order{
		{
			ID: "o1", UserID: "u1", Username: "ana", Status: domain.StatusCompleted,
			Total: money.MustNew(2000, 100), CreatedAt: at,
			Lines: []domain.Line{{LineNo: 1, ProductID: "p1", ProductName: "Mug", Quantity: 2, UnitPrice: money.MustNew(10, 1)}},
		},
		{
			ID: "o2", UserID: "u2", Username: "ben", Status: domain.StatusCompleted,
			Total: money.MustNew(1550, 100), CreatedAt: at.Add(time.Hour),
			Lines: []domain.Line{
				{LineNo: 1, ProductID: "p1", ProductName: "Mug", Quantity: 1, UnitPrice: money.MustNew(10, 1)},
				{LineNo: 2, ProductID: "p2", ProductName: "Tea", Quantity: 1, UnitPrice: money.MustNew(550, 100)},
			},
		},
		{
			ID: "o3", UserID: "u1", Username: "ana", Status: domain.StatusCompleted,
			Total: money.MustNew(1650, 100), CreatedAt: at.Add(2 * time.Hour),
			Lines: []domain.Line{{LineNo: 1, ProductID: "p2", ProductName: "Tea", Quantity: 3, UnitPrice: money.MustNew(550, 100)}},
		},
	}
}
