package repo

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/models/m_price_history"
	"github.com/light-bringer/backoffice-service/internal/models/m_product"
	"github.com/light-bringer/backoffice-service/internal/pkg/money"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

const productSelect = `SELECT p.product_id, p.name, p.description, p.price_numerator, p.price_denominator,
       p.stock, p.category_id, p.expires_on, p.visible, p.version, p.created_by, p.updated_by,
       p.created_at, p.updated_at, c.name AS category_name
FROM products p
LEFT JOIN categories c ON c.category_id = p.category_id`

// ReadModel implements contracts.ReadModel for Spanner.
type ReadModel struct {
	client     *spanner.Client
	categories contracts.CategoryRepository
}

// NewReadModel creates a new catalog ReadModel.
func NewReadModel(client *spanner.Client, categories contracts.CategoryRepository) contracts.ReadModel {
	return &ReadModel{client: client, categories: categories}
}

// GetProduct returns one product regardless of visibility.
func (rm *ReadModel) GetProduct(ctx context.Context, productID string) (*contracts.ProductDTO, error) {
	stmt := spanner.Statement{
		SQL:    productSelect + "\nWHERE p.product_id = @id",
		Params: map[string]interface{}{"id": productID},
	}
	products, err := rm.queryProducts(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrProductNotFound
	}
	return products[0], nil
}

// ListCatalog returns what customers can buy.
func (rm *ReadModel) ListCatalog(ctx context.Context, filter contracts.CatalogFilter) ([]*contracts.ProductDTO, error) {
	return rm.queryProducts(ctx, catalogStatement(filter))
}

// ListUnpriced returns products awaiting a price.
func (rm *ReadModel) ListUnpriced(ctx context.Context, limit int64) ([]*contracts.ProductDTO, error) {
	stmt := spanner.Statement{
		SQL:    productSelect + "\nWHERE p.price_numerator IS NULL\nORDER BY p.created_at ASC, p.product_id\nLIMIT @limit",
		Params: map[string]interface{}{"limit": pageSize(limit)},
	}
	return rm.queryProducts(ctx, stmt)
}

// ListInventory returns every product, newest first.
func (rm *ReadModel) ListInventory(ctx context.Context, limit, offset int64) ([]*contracts.ProductDTO, error) {
	stmt := spanner.Statement{
		SQL:    productSelect + "\nORDER BY p.created_at DESC, p.product_id\nLIMIT @limit OFFSET @offset",
		Params: map[string]interface{}{"limit": pageSize(limit), "offset": offset},
	}
	return rm.queryProducts(ctx, stmt)
}

// ListCategories returns the top-level categories with their subcategories.
func (rm *ReadModel) ListCategories(ctx context.Context) ([]*contracts.CategoryDTO, error) {
	all, err := rm.categories.List(ctx, rm.client.Single())
	if err != nil {
		return nil, err
	}
	return buildCategoryTree(all), nil
}

// PriceHistory returns the price changes of a product, most recent first.
func (rm *ReadModel) PriceHistory(ctx context.Context, productID string, limit int64) ([]*contracts.PriceHistoryDTO, error) {
	model := m_price_history.NewModel()
	stmt := query.From(m_price_history.TableName).
		Select(model.ReadColumns()...).
		Where(query.Eq(m_price_history.ProductID, productID)).
		OrderBy(m_price_history.ChangedAt, query.Desc).
		Limit(pageSize(limit)).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var records []*contracts.PriceHistoryDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query price history: %w", err)
		}

		var data m_price_history.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse price history: %w", err)
		}

		oldPrice, err := money.FromNullable(data.OldPriceNumerator.Int64, data.OldPriceDenominator.Int64, data.OldPriceNumerator.Valid)
		if err != nil {
			return nil, err
		}
		newPrice, err := money.FromNullable(data.NewPriceNumerator.Int64, data.NewPriceDenominator.Int64, data.NewPriceNumerator.Valid)
		if err != nil {
			return nil, err
		}

		records = append(records, &contracts.PriceHistoryDTO{
			HistoryID: data.HistoryID,
			ProductID: data.ProductID,
			OldPrice:  oldPrice,
			NewPrice:  newPrice,
			ChangedBy: data.ChangedBy.StringVal,
			ChangedAt: data.ChangedAt,
		})
	}
	return records, nil
}

func (rm *ReadModel) queryProducts(ctx context.Context, stmt spanner.Statement) ([]*contracts.ProductDTO, error) {
	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	products := make([]*contracts.ProductDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query products: %w", err)
		}

		var (
			data         m_product.Data
			categoryName spanner.NullString
		)
		if err := row.Columns(
			&data.ProductID, &data.Name, &data.Description, &data.PriceNumerator, &data.PriceDenominator,
			&data.Stock, &data.CategoryID, &data.ExpiresOn, &data.Visible, &data.Version,
			&data.CreatedBy, &data.UpdatedBy, &data.CreatedAt, &data.UpdatedAt, &categoryName,
		); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}

		price, err := data.Price()
		if err != nil {
			return nil, fmt.Errorf("invalid price for product %s: %w", data.ProductID, err)
		}

		products = append(products, &contracts.ProductDTO{
			ProductID:    data.ProductID,
			Name:         data.Name,
			Description:  data.Description,
			Price:        price,
			Stock:        data.Stock,
			CategoryID:   data.CategoryID.StringVal,
			CategoryName: categoryName.StringVal,
			ExpiresOn:    dateOrNil(data.ExpiresOn),
			Visible:      data.Visible,
			Version:      data.Version,
			CreatedBy:    data.CreatedBy.StringVal,
			UpdatedBy:    data.UpdatedBy.StringVal,
			CreatedAt:    data.CreatedAt,
			UpdatedAt:    data.UpdatedAt,
		})
	}
	return products, nil
}

func catalogStatement(filter contracts.CatalogFilter) spanner.Statement {
	where := []string{"p.visible = TRUE", "p.stock > 0"}
	params := map[string]interface{}{
		"limit":  pageSize(filter.Limit),
		"offset": filter.Offset,
	}

	if filter.CategoryID != "" {
		where = append(where, "(p.category_id = @category OR c.parent_id = @category)")
		params["category"] = filter.CategoryID
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where = append(where, "STRPOS(LOWER(p.name), LOWER(@search)) > 0")
		params["search"] = search
	}

	sql := productSelect +
		"\nWHERE " + strings.Join(where, " AND ") +
		"\nORDER BY p.created_at DESC, p.product_id" +
		"\nLIMIT @limit OFFSET @offset"
	return spanner.Statement{SQL: sql, Params: params}
}

func buildCategoryTree(all []*domain.Category) []*contracts.CategoryDTO {
	byID := make(map[string]*contracts.CategoryDTO, len(all))
	for _, c := range all {
		byID[c.ID] = &contracts.CategoryDTO{
			CategoryID:  c.ID,
			Name:        c.Name,
			Description: c.Description,
		}
	}

	roots := make([]*contracts.CategoryDTO, 0)
	for _, c := range all {
		dto := byID[c.ID]
		parent, ok := byID[c.ParentID]
		if c.ParentID == "" || !ok {
			roots = append(roots, dto)
			continue
		}
		parent.Subcategories = append(parent.Subcategories, dto)
	}
	return roots
}

func pageSize(limit int64) int64 {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
