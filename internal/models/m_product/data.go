package m_product

import (
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/pkg/money"
)

// Data represents the database model for the products table.
type Data struct {
	ProductID        string             `spanner:"product_id"`
	Name             string             `spanner:"name"`
	Description      string             `spanner:"description"`
	PriceNumerator   spanner.NullInt64  `spanner:"price_numerator"`
	PriceDenominator spanner.NullInt64  `spanner:"price_denominator"`
	Stock            int64              `spanner:"stock"`
	CategoryID       spanner.NullString `spanner:"category_id"`
	ExpiresOn        spanner.NullDate   `spanner:"expires_on"`
	Visible          bool               `spanner:"visible"`
	Version          int64              `spanner:"version"`
	CreatedBy        spanner.NullString `spanner:"created_by"`
	UpdatedBy        spanner.NullString `spanner:"updated_by"`
	CreatedAt        time.Time          `spanner:"created_at"`
	UpdatedAt        time.Time          `spanner:"updated_at"`
}

// StockData is the projection of a product row used by the stock ledger.
type StockData struct {
	ProductID        string            `spanner:"product_id"`
	Name             string            `spanner:"name"`
	PriceNumerator   spanner.NullInt64 `spanner:"price_numerator"`
	PriceDenominator spanner.NullInt64 `spanner:"price_denominator"`
	Stock            int64             `spanner:"stock"`
	Visible          bool              `spanner:"visible"`
	Version          int64             `spanner:"version"`
}

// NullDate converts an optional date into its column value.
func NullDate(d *civil.Date) spanner.NullDate {
	if d == nil {
		return spanner.NullDate{}
	}
	return spanner.NullDate{Date: *d, Valid: true}
}

// NullPrice converts an optional price into its two column values.
func NullPrice(price *money.Money) (spanner.NullInt64, spanner.NullInt64, error) {
	if price == nil {
		return spanner.NullInt64{}, spanner.NullInt64{}, nil
	}
	num, den, err := price.Parts()
	if err != nil {
		return spanner.NullInt64{}, spanner.NullInt64{}, err
	}
	return spanner.NullInt64{Int64: num, Valid: true}, spanner.NullInt64{Int64: den, Valid: true}, nil
}

// Price returns the stored price, nil when unpriced.
func (d *StockData) Price() (*money.Money, error) {
	return money.FromNullable(d.PriceNumerator.Int64, d.PriceDenominator.Int64, d.PriceNumerator.Valid && d.PriceDenominator.Valid)
}

// Price returns the stored price, nil when unpriced.
func (d *Data) Price() (*money.Money, error) {
	return money.FromNullable(d.PriceNumerator.Int64, d.PriceDenominator.Int64, d.PriceNumerator.Valid && d.PriceDenominator.Valid)
}
