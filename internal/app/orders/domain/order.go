package domain

import (
	"sort"
	"time"

	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// StatusCompleted is the status of every order placed through checkout.
const StatusCompleted = "completed"

// Line is one purchased product as it was at checkout.
type Line struct {
	LineNo      int64
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   *money.Money
}

// Subtotal returns quantity times unit price.
func (l Line) Subtotal() *money.Money {
	return l.UnitPrice.MultiplyInt(l.Quantity)
}

// Order is a placed order as read back from history. Orders are never
// modified after checkout.
type Order struct {
	ID        string
	UserID    string
	Username  string
	Status    string
	Total     *money.Money
	CreatedBy string
	CreatedAt time.Time
	Lines     []Line
}

// OwnedBy reports whether userID placed the order.
func (o *Order) OwnedBy(userID string) bool {
	return userID != "" && o.UserID == userID
}

// SoldProduct is the sales total for one product.
type SoldProduct struct {
	ProductID   string
	ProductName string
	Units       int64
	Revenue     *money.Money
}

// TallySold groups lines by product id. Lines are expected newest first;
// the first name seen for a product is reported. The result is ordered by
// units sold, then by revenue, then by name.
func TallySold(lines []Line) []SoldProduct {
	index := make(map[string]int)
	out := make([]SoldProduct, 0)
	for _, l := range lines {
		i, ok := index[l.ProductID]
		if !ok {
			i = len(out)
			index[l.ProductID] = i
			out = append(out, SoldProduct{
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Revenue:     money.Zero(),
			})
		}
		out[i].Units += l.Quantity
		out[i].Revenue = out[i].Revenue.Add(l.Subtotal())
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Units != b.Units {
			return a.Units > b.Units
		}
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		return a.ProductName < b.ProductName
	})
	return out
}

// Summary holds the admin dashboard counters.
type Summary struct {
	Customers        int64
	WarehouseClerks  int64
	Admins           int64
	Products         int64
	VisibleProducts  int64
	UnpricedProducts int64
	OutOfStock       int64
	Orders           int64
	Revenue          *money.Money
	GeneratedAt      time.Time
}
