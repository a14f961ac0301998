package seed_categories

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/backoffice-service/internal/app/catalog/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/catalog/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
)

// Request selects the tree to seed. An empty Tree seeds the default layout.
type Request struct {
	Tree []domain.CategorySeed
}

// Response reports what was inserted.
type Response struct {
	Created []string
	Skipped int
}

// Interactor creates the category tree.
type Interactor struct {
	categories contracts.CategoryRepository
	tx         contracts.TxRunner
	newID      func() string
}

// NewInteractor creates a new seed categories interactor.
func NewInteractor(categories contracts.CategoryRepository, tx contracts.TxRunner) *Interactor {
	return &Interactor{
		categories: categories,
		tx:         tx,
		newID:      func() string { return uuid.New().String() },
	}
}

// Execute inserts every category of the tree that does not exist yet.
// Categories are matched by name under the same parent, so running it
// twice changes nothing.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	tree := req.Tree
	if len(tree) == 0 {
		tree = domain.DefaultCategoryTree
	}

	var resp *Response
	err := i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		existing, err := i.categories.List(ctx, txn)
		if err != nil {
			return err
		}

		byKey := make(map[[2]string]string, len(existing))
		for _, c := range existing {
			byKey[[2]string{c.ParentID, c.Name}] = c.ID
		}

		resp = &Response{}
		ensure := func(seed domain.CategorySeed, parentID string) string {
			key := [2]string{parentID, seed.Name}
			if id, ok := byKey[key]; ok {
				resp.Skipped++
				return id
			}
			c := &domain.Category{
				ID:          i.newID(),
				Name:        seed.Name,
				Description: seed.Description,
				ParentID:    parentID,
			}
			plan.Add(i.categories.InsertMut(c))
			byKey[key] = c.ID
			resp.Created = append(resp.Created, c.Name)
			return c.ID
		}

		for _, parent := range tree {
			parentID := ensure(parent, "")
			for _, child := range parent.Children {
				ensure(child, parentID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
