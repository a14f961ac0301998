package catalogtest

import (
	"context"
	"sort"
	"strings"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
)

// ReadModel returns a contracts.ReadModel that answers from the store.
func (s *Store) ReadModel() contracts.ReadModel { return readModel{s} }

type readModel struct{ s *Store }

func (r readModel) GetProduct(_ context.Context, productID string) (*contracts.ProductDTO, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	row, ok := r.s.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return r.dto(productID, row), nil
}

func (r readModel) ListCatalog(_ context.Context, filter contracts.CatalogFilter) ([]*contracts.ProductDTO, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	return r.list(func(_ string, row *ProductRow) bool {
		if !row.Visible || row.Stock <= 0 {
			return false
		}
		if filter.CategoryID != "" && row.CategoryID != filter.CategoryID {
			c, ok := r.s.categories[row.CategoryID]
			if !ok || c.ParentID != filter.CategoryID {
				return false
			}
		}
		return search == "" || strings.Contains(strings.ToLower(row.Name), search)
	}, false, filter.Limit, filter.Offset), nil
}

func (r readModel) ListUnpriced(_ context.Context, limit int64) ([]*contracts.ProductDTO, error) {
	return r.list(func(_ string, row *ProductRow) bool { return row.Price == nil }, true, limit, 0), nil
}

func (r readModel) ListInventory(_ context.Context, limit, offset int64) ([]*contracts.ProductDTO, error) {
	return r.list(func(string, *ProductRow) bool { return true }, false, limit, offset), nil
}

func (r readModel) ListCategories(context.Context) ([]*contracts.CategoryDTO, error) {
	all := r.s.Categories()
	byID := make(map[string]*contracts.CategoryDTO, len(all))
	for _, c := range all {
		byID[c.ID] = &contracts.CategoryDTO{CategoryID: c.ID, Name: c.Name, Description: c.Description}
	}
	roots := make([]*contracts.CategoryDTO, 0)
	for _, c := range all {
		if parent, ok := byID[c.ParentID]; ok {
			parent.Subcategories = append(parent.Subcategories, byID[c.ID])
			continue
		}
		roots = append(roots, byID[c.ID])
	}
	return roots, nil
}

func (r readModel) PriceHistory(_ context.Context, productID string, limit int64) ([]*contracts.PriceHistoryDTO, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*contracts.PriceHistoryDTO, 0)
	for i := len(r.s.history) - 1; i >= 0; i-- {
		h := r.s.history[i]
		if h.ProductID != productID {
			continue
		}
		out = append(out, &contracts.PriceHistoryDTO{
			ProductID: h.ProductID,
			OldPrice:  h.OldPrice.Copy(),
			NewPrice:  h.NewPrice.Copy(),
			ChangedBy: h.ChangedBy,
			ChangedAt: h.ChangedAt,
		})
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (r readModel) list(keep func(string, *ProductRow) bool, oldestFirst bool, limit, offset int64) []*contracts.ProductDTO {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*contracts.ProductDTO, 0)
	for id, row := range r.s.products {
		if keep(id, row) {
			out = append(out, r.dto(id, row))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if oldestFirst {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ProductID < b.ProductID
	})

	if offset >= int64(len(out)) {
		return []*contracts.ProductDTO{}
	}
	out = out[offset:]
	if limit > 0 && limit < int64(len(out)) {
		out = out[:limit]
	}
	return out
}

func (r readModel) dto(id string, row *ProductRow) *contracts.ProductDTO {
	dto := &contracts.ProductDTO{
		ProductID:   id,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price.Copy(),
		Stock:       row.Stock,
		CategoryID:  row.CategoryID,
		ExpiresOn:   row.ExpiresOn,
		Visible:     row.Visible,
		Version:     row.Version,
		CreatedBy:   row.CreatedBy,
		UpdatedBy:   row.UpdatedBy,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.CreatedAt,
	}
	if c, ok := r.s.categories[row.CategoryID]; ok {
		dto.CategoryName = c.Name
	}
	return dto
}
