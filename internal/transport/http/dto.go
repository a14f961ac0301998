package http

import (
	"time"

	"cloud.google.com/go/civil"

	catalogcontracts "github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	identitycontracts "github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
	ledgercontracts "github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	ledgerdomain "github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
	ordersdomain "github.com/light-bringer/backoffice-service/internal/app/orders/domain"
	"github.com/light-bringer/backoffice-service/internal/models/m_outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// Money values render as two-decimal strings; a nil price renders as null.

type productJSON struct {
	ProductID    string       `json:"product_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Price        *money.Money `json:"price"`
	Stock        int64        `json:"stock"`
	CategoryID   string       `json:"category_id,omitempty"`
	CategoryName string       `json:"category_name,omitempty"`
	ExpiresOn    *civil.Date  `json:"expires_on,omitempty"`
	Visible      bool         `json:"visible"`
	Version      int64        `json:"version"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func toProductJSON(p *catalogcontracts.ProductDTO) productJSON {
	return productJSON{
		ProductID:    p.ProductID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		ExpiresOn:    p.ExpiresOn,
		Visible:      p.Visible,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProductsJSON(products []*catalogcontracts.ProductDTO) []productJSON {
	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toProductJSON(p))
	}
	return out
}

type categoryJSON struct {
	CategoryID    string         `json:"category_id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Subcategories []categoryJSON `json:"subcategories,omitempty"`
}

func toCategoriesJSON(categories []*catalogcontracts.CategoryDTO) []categoryJSON {
	out := make([]categoryJSON, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryJSON{
			CategoryID:    c.CategoryID,
			Name:          c.Name,
			Description:   c.Description,
			Subcategories: toCategoriesJSON(c.Subcategories),
		})
	}
	return out
}

type priceChangeJSON struct {
	OldPrice  *money.Money `json:"old_price"`
	NewPrice  *money.Money `json:"new_price"`
	ChangedBy string       `json:"changed_by"`
	ChangedAt time.Time    `json:"changed_at"`
}

func toPriceHistoryJSON(rows []*catalogcontracts.PriceHistoryDTO) []priceChangeJSON {
	out := make([]priceChangeJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, priceChangeJSON{
			OldPrice:  r.OldPrice,
			NewPrice:  r.NewPrice,
			ChangedBy: r.ChangedBy,
			ChangedAt: r.ChangedAt,
		})
	}
	return out
}

type cartLineJSON struct {
	ItemID      string       `json:"item_id"`
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	UnitPrice   *money.Money `json:"unit_price"`
	Quantity    int64        `json:"quantity"`
	Subtotal    *money.Money `json:"subtotal"`
}

type cartJSON struct {
	CartID    string         `json:"cart_id,omitempty"`
	Lines     []cartLineJSON `json:"lines"`
	ItemCount int64          `json:"item_count"`
	Total     *money.Money   `json:"total"`
}

func toCartJSON(cart *ledgercontracts.CartDTO) cartJSON {
	out := cartJSON{
		CartID:    cart.CartID,
		Lines:     make([]cartLineJSON, 0, len(cart.Lines)),
		ItemCount: cart.ItemCount,
		Total:     cart.Total,
	}
	if out.Total == nil {
		out.Total = money.Zero()
	}
	for _, l := range cart.Lines {
		out.Lines = append(out.Lines, cartLineJSON{
			ItemID:      l.ItemID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal,
		})
	}
	return out
}

type orderLineJSON struct {
	LineNo      int64        `json:"line_no"`
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	Quantity    int64        `json:"quantity"`
	UnitPrice   *money.Money `json:"unit_price"`
	Subtotal    *money.Money `json:"subtotal"`
}

type orderJSON struct {
	OrderID   string          `json:"order_id"`
	UserID    string          `json:"user_id"`
	Username  string          `json:"username,omitempty"`
	Status    string          `json:"status"`
	Total     *money.Money    `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
	Lines     []orderLineJSON `json:"lines"`
}

func toOrderJSON(o *ordersdomain.Order) orderJSON {
	out := orderJSON{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Username:  o.Username,
		Status:    o.Status,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		Lines:     make([]orderLineJSON, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, orderLineJSON{
			LineNo:      l.LineNo,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal(),
		})
	}
	return out
}

func toOrdersJSON(orders []*ordersdomain.Order) []orderJSON {
	out := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderJSON(o))
	}
	return out
}

// placedOrderJSON renders the order returned by checkout.
func placedOrderJSON(o *ledgerdomain.Order) orderJSON {
	out := orderJSON{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		Lines:     make([]orderLineJSON, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, orderLineJSON{
			LineNo:      l.LineNo,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal(),
		})
	}
	return out
}

type soldProductJSON struct {
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	Units       int64        `json:"units"`
	Revenue     *money.Money `json:"revenue"`
}

func toSoldJSON(sold []ordersdomain.SoldProduct) []soldProductJSON {
	out := make([]soldProductJSON, 0, len(sold))
	for _, s := range sold {
		out = append(out, soldProductJSON{
			ProductID:   s.ProductID,
			ProductName: s.ProductName,
			Units:       s.Units,
			Revenue:     s.Revenue,
		})
	}
	return out
}

type summaryJSON struct {
	Customers        int64        `json:"customers"`
	WarehouseClerks  int64        `json:"warehouse_clerks"`
	Admins           int64        `json:"admins"`
	Products         int64        `json:"products"`
	VisibleProducts  int64        `json:"visible_products"`
	UnpricedProducts int64        `json:"unpriced_products"`
	OutOfStock       int64        `json:"out_of_stock"`
	Orders           int64        `json:"orders"`
	Revenue          *money.Money `json:"revenue"`
	GeneratedAt      time.Time    `json:"generated_at"`
}

func toSummaryJSON(s *ordersdomain.Summary) summaryJSON {
	return summaryJSON{
		Customers:        s.Customers,
		WarehouseClerks:  s.WarehouseClerks,
		Admins:           s.Admins,
		Products:         s.Products,
		VisibleProducts:  s.VisibleProducts,
		UnpricedProducts: s.UnpricedProducts,
		OutOfStock:       s.OutOfStock,
		Orders:           s.Orders,
		Revenue:          s.Revenue,
		GeneratedAt:      s.GeneratedAt,
	}
}

type userJSON struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
}

func toUsersJSON(users []*identitycontracts.UserDTO) []userJSON {
	out := make([]userJSON, 0, len(users))
	for _, u := range users {
		out = append(out, userJSON(*u))
	}
	return out
}

type eventJSON struct {
	EventID     string     `json:"event_id"`
	EventType   string     `json:"event_type"`
	AggregateID string     `json:"aggregate_id"`
	Payload     any        `json:"payload"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

func toEventsJSON(events []*m_outbox.Data) []eventJSON {
	out := make([]eventJSON, 0, len(events))
	for _, e := range events {
		ej := eventJSON{
			EventID:     e.EventID,
			EventType:   e.EventType,
			AggregateID: e.AggregateID,
			Status:      e.Status,
			CreatedAt:   e.CreatedAt,
		}
		if e.Payload.Valid {
			ej.Payload = e.Payload.Value
		}
		if e.ProcessedAt.Valid {
			t := e.ProcessedAt.Time
			ej.ProcessedAt = &t
		}
		out = append(out, ej)
	}
	return out
}
