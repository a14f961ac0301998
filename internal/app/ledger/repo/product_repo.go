package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/backoffice-service/internal/app/ledger/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/ledger/domain"
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

// Get loads the stock view of one product.
func (r *ProductRepo) Get(ctx context.Context, rd query.Reader, productID string) (*domain.Product, error) {
	row, err := rd.ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.StockColumns)
	if err != nil {
		if query.IsNotFound(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.StockData
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return dataToProduct(&data)
}

// GetMany loads the stock view of several products in one query.
func (r *ProductRepo) GetMany(ctx context.Context, rd query.Reader, productIDs []string) (map[string]*domain.Product, error) {
	products := make(map[string]*domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return products, nil
	}

	stmt := query.From(m_product.TableName).
		Select(m_product.StockColumns...).
		Where(query.In(m_product.ProductID, productIDs)).
		Build()

	iter := rd.Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.StockData
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		p, err := dataToProduct(&data)
		if err != nil {
			return nil, err
		}
		products[p.ID()] = p
	}

	return products, nil
}

// StockMut persists a reserved or released stock level.
func (r *ProductRepo) StockMut(product *domain.Product) *spanner.Mutation {
	if !product.StockChanged() {
		return nil
	}
	return r.model.StockMut(product.ID(), product.Stock(), product.Version())
}

func dataToProduct(data *m_product.StockData) (*domain.Product, error) {
	price, err := data.Price()
	if err != nil {
		return nil, fmt.Errorf("invalid price for product %s: %w", data.ProductID, err)
	}
	return domain.ReconstructProduct(data.ProductID, data.Name, price, data.Stock, data.Visible, data.Version), nil
}
