package change_role

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
)

// Request assigns Role to UserID on behalf of ActorID.
type Request struct {
	UserID  string
	Role    string
	ActorID string
}

// Interactor changes user roles.
type Interactor struct {
	users  contracts.UserRepository
	events contracts.EventRepository
	tx     contracts.TxRunner
	clock  clock.Clock
}

// NewInteractor creates a new change role interactor.
func NewInteractor(users contracts.UserRepository, events contracts.EventRepository, tx contracts.TxRunner, clock clock.Clock) *Interactor {
	return &Interactor{users: users, events: events, tx: tx, clock: clock}
}

// Execute applies the new role.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return err
	}

	return i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		user, err := i.users.Get(ctx, txn, req.UserID)
		if err != nil {
			return err
		}
		if err := user.ChangeRole(role, req.ActorID, i.clock.Now()); err != nil {
			return err
		}

		plan.Add(i.users.UpdateMut(user))
		eventMuts, err := i.events.InsertMuts(user.DomainEvents())
		if err != nil {
			return err
		}
		plan.AddMultiple(eventMuts)
		return nil
	})
}
