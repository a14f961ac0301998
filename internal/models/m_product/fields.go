package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID        = "product_id"
	Name             = "name"
	Description      = "description"
	PriceNumerator   = "price_numerator"
	PriceDenominator = "price_denominator"
	Stock            = "stock"
	CategoryID       = "category_id"
	ExpiresOn        = "expires_on"
	Visible          = "visible"
	Version          = "version"
	CreatedBy        = "created_by"
	UpdatedBy        = "updated_by"
	CreatedAt        = "created_at"
	UpdatedAt        = "updated_at"
)

// Columns lists every column in Data order.
var Columns = []string{
	ProductID,
	Name,
	Description,
	PriceNumerator,
	PriceDenominator,
	Stock,
	CategoryID,
	ExpiresOn,
	Visible,
	Version,
	CreatedBy,
	UpdatedBy,
	CreatedAt,
	UpdatedAt,
}

// StockColumns are the columns the stock ledger reads.
var StockColumns = []string{
	ProductID,
	Name,
	PriceNumerator,
	PriceDenominator,
	Stock,
	Visible,
	Version,
}
