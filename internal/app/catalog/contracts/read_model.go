package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// ProductDTO is a product as shown to staff and customers.
type ProductDTO struct {
	ProductID    string
	Name         string
	Description  string
	Price        *money.Money // nil while awaiting pricing
	Stock        int64
	CategoryID   string
	CategoryName string
	ExpiresOn    *civil.Date
	Visible      bool
	Version      int64
	CreatedBy    string
	UpdatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CategoryDTO is a category with its subcategories.
type CategoryDTO struct {
	CategoryID    string
	Name          string
	Description   string
	Subcategories []*CategoryDTO
}

// PriceHistoryDTO is one recorded price change.
type PriceHistoryDTO struct {
	HistoryID string
	ProductID string
	OldPrice  *money.Money
	NewPrice  *money.Money
	ChangedBy string
	ChangedAt time.Time
}

// CatalogFilter narrows ListCatalog. A top-level CategoryID matches its
// subcategories too.
type CatalogFilter struct {
	CategoryID string
	Search     string
	Limit      int64
	Offset     int64
}

// ReadModel serves catalog queries.
type ReadModel interface {
	GetProduct(ctx context.Context, productID string) (*ProductDTO, error)
	// ListCatalog returns visible products with stock, newest first.
	ListCatalog(ctx context.Context, filter CatalogFilter) ([]*ProductDTO, error)
	// ListUnpriced returns products awaiting a price, oldest first.
	ListUnpriced(ctx context.Context, limit int64) ([]*ProductDTO, error)
	// ListInventory returns every product for the warehouse, newest first.
	ListInventory(ctx context.Context, limit, offset int64) ([]*ProductDTO, error)
	ListCategories(ctx context.Context) ([]*CategoryDTO, error)
	PriceHistory(ctx context.Context, productID string, limit int64) ([]*PriceHistoryDTO, error)
}
