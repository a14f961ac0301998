package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/models/m_product"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

// ProductRepo implements contracts.ProductRepository for Spanner.
type ProductRepo struct {
	model *m_product.Model
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo() contracts.ProductRepository {
	return &ProductRepo{model: m_product.NewModel()}
}

// Get reconstructs the product aggregate.
func (r *ProductRepo) Get(ctx context.Context, rd query.Reader, productID string) (*domain.Product, error) {
	row, err := rd.ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.Columns)
	if err != nil {
		if query.IsNotFound(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return dataToProduct(&data)
}

// InsertMut creates a mutation for inserting a new product.
func (r *ProductRepo) InsertMut(product *domain.Product) (*spanner.Mutation, error) {
	num, den, err := m_product.NullPrice(product.Price())
	if err != nil {
		return nil, fmt.Errorf("price of %s: %w", product.ID(), err)
	}

	return r.model.InsertMut(&m_product.Data{
		ProductID:        product.ID(),
		Name:             product.Name(),
		Description:      product.Description(),
		PriceNumerator:   num,
		PriceDenominator: den,
		Stock:            product.Stock(),
		CategoryID:       nullString(product.CategoryID()),
		ExpiresOn:        m_product.NullDate(product.ExpiresOn()),
		Visible:          product.Visible(),
		Version:          product.Version(),
		CreatedBy:        nullString(product.CreatedBy()),
		UpdatedBy:        nullString(product.UpdatedBy()),
	}), nil
}

// UpdateMut creates a mutation for the dirty fields of a product.
func (r *ProductRepo) UpdateMut(product *domain.Product) (*spanner.Mutation, error) {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldName) {
		updates[m_product.Name] = product.Name()
	}

	if changes.Dirty(domain.FieldDescription) {
		updates[m_product.Description] = product.Description()
	}

	if changes.Dirty(domain.FieldStock) {
		updates[m_product.Stock] = product.Stock()
	}

	if changes.Dirty(domain.FieldCategory) {
		updates[m_product.CategoryID] = nullString(product.CategoryID())
	}

	if changes.Dirty(domain.FieldExpiresOn) {
		updates[m_product.ExpiresOn] = m_product.NullDate(product.ExpiresOn())
	}

	if changes.Dirty(domain.FieldPrice) {
		num, den, err := m_product.NullPrice(product.Price())
		if err != nil {
			return nil, fmt.Errorf("price of %s: %w", product.ID(), err)
		}
		updates[m_product.PriceNumerator] = num
		updates[m_product.PriceDenominator] = den
		updates[m_product.Visible] = product.Visible()
	}

	updates[m_product.UpdatedBy] = nullString(product.UpdatedBy())

	// Increment version for optimistic locking
	updates[m_product.Version] = product.Version() + 1

	return r.model.UpdateMut(product.ID(), updates), nil
}

func dataToProduct(data *m_product.Data) (*domain.Product, error) {
	price, err := data.Price()
	if err != nil {
		return nil, fmt.Errorf("invalid price for product %s: %w", data.ProductID, err)
	}

	return domain.ReconstructProduct(
		data.ProductID,
		data.Name,
		data.Description,
		price,
		data.Stock,
		data.CategoryID.StringVal,
		dateOrNil(data.ExpiresOn),
		data.Version,
		data.CreatedBy.StringVal,
		data.UpdatedBy.StringVal,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}

func nullString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}

func dateOrNil(d spanner.NullDate) *civil.Date {
	if !d.Valid {
		return nil
	}
	date := d.Date
	return &date
}
