package bootstrap_admin

import (
	"context"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
)

// Request describes the first administrator.
type Request struct {
	Username string
	Email    string
	Password string
}

// Response reports whether an admin was created.
type Response struct {
	Created bool
	UserID  string
}

// Interactor seeds the first admin account.
type Interactor struct {
	users      contracts.UserRepository
	events     contracts.EventRepository
	tx         contracts.TxRunner
	clock      clock.Clock
	bcryptCost int
}

// NewInteractor creates a new bootstrap admin interactor.
func NewInteractor(
	users contracts.UserRepository,
	events contracts.EventRepository,
	tx contracts.TxRunner,
	clock clock.Clock,
	bcryptCost int,
) *Interactor {
	return &Interactor{
		users:      users,
		events:     events,
		tx:         tx,
		clock:      clock,
		bcryptCost: bcryptCost,
	}
}

// Execute creates the admin only when no user exists yet. Running it again
// is a no-op.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := domain.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}
	hash, err := domain.HashPassword(req.Password, i.bcryptCost)
	if err != nil {
		return nil, err
	}

	admin, err := domain.NewUser(uuid.New().String(), req.Username, req.Email, "Administrator", hash, domain.RoleAdmin, i.clock.Now())
	if err != nil {
		return nil, err
	}

	resp := &Response{}
	err = i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		resp.Created = false

		count, err := i.users.Count(ctx, txn)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		plan.Add(i.users.InsertMut(admin))
		eventMuts, err := i.events.InsertMuts(admin.DomainEvents())
		if err != nil {
			return err
		}
		plan.AddMultiple(eventMuts)

		resp.Created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Created {
		resp.UserID = admin.ID()
	}
	return resp, nil
}
