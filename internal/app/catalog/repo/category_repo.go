package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/models/m_category"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

// CategoryRepo implements contracts.CategoryRepository for Spanner.
type CategoryRepo struct {
	model *m_category.Model
}

// NewCategoryRepo creates a new CategoryRepo.
func NewCategoryRepo() contracts.CategoryRepository {
	return &CategoryRepo{model: m_category.NewModel()}
}

// Get returns a category by id.
func (r *CategoryRepo) Get(ctx context.Context, rd query.Reader, categoryID string) (*domain.Category, error) {
	row, err := rd.ReadRow(ctx, m_category.TableName, spanner.Key{categoryID}, m_category.Columns)
	if err != nil {
		if query.IsNotFound(err) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to read category: %w", err)
	}
	return rowToCategory(row)
}

// List returns every category ordered by name.
func (r *CategoryRepo) List(ctx context.Context, rd query.Reader) ([]*domain.Category, error) {
	stmt := query.From(m_category.TableName).
		Select(m_category.Columns...).
		OrderBy(m_category.Name, query.Asc).
		Build()

	iter := rd.Query(ctx, stmt)
	defer iter.Stop()

	var categories []*domain.Category
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list categories: %w", err)
		}
		c, err := rowToCategory(row)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}

// InsertMut creates a mutation for inserting a category.
func (r *CategoryRepo) InsertMut(category *domain.Category) *spanner.Mutation {
	return r.model.InsertMut(&m_category.Data{
		CategoryID:  category.ID,
		Name:        category.Name,
		Description: nullString(category.Description),
		ParentID:    nullString(category.ParentID),
	})
}

func rowToCategory(row *spanner.Row) (*domain.Category, error) {
	var data m_category.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse category: %w", err)
	}
	return &domain.Category{
		ID:          data.CategoryID,
		Name:        data.Name,
		Description: data.Description.StringVal,
		ParentID:    data.ParentID.StringVal,
	}, nil
}
