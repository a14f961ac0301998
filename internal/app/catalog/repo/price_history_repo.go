package repo

import (
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/models/m_price_history"
	"github.com/light-bringer/backoffice-service/internal/models/m_product"
)

// PriceHistoryRepo implements contracts.PriceHistoryRepository for Spanner.
type PriceHistoryRepo struct {
	model *m_price_history.Model
}

// NewPriceHistoryRepo creates a new PriceHistoryRepo.
func NewPriceHistoryRepo() contracts.PriceHistoryRepository {
	return &PriceHistoryRepo{model: m_price_history.NewModel()}
}

// InsertMut creates a mutation recording one price change. A nil old price
// is the first assignment, a nil new price is the price being cleared.
func (r *PriceHistoryRepo) InsertMut(change *domain.PriceChange) (*spanner.Mutation, error) {
	oldNum, oldDen, err := m_product.NullPrice(change.OldPrice)
	if err != nil {
		return nil, fmt.Errorf("old price: %w", err)
	}
	newNum, newDen, err := m_product.NullPrice(change.NewPrice)
	if err != nil {
		return nil, fmt.Errorf("new price: %w", err)
	}

	return r.model.InsertMut(&m_price_history.Data{
		HistoryID:           uuid.New().String(),
		ProductID:           change.ProductID,
		OldPriceNumerator:   oldNum,
		OldPriceDenominator: oldDen,
		NewPriceNumerator:   newNum,
		NewPriceDenominator: newDen,
		ChangedBy:           nullString(change.ChangedBy),
	}), nil
}
