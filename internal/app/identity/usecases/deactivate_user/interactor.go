package deactivate_user

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
)

// Request names the account to disable and the admin doing it.
type Request struct {
	UserID  string
	ActorID string
}

// Interactor disables accounts.
type Interactor struct {
	users  contracts.UserRepository
	events contracts.EventRepository
	tx     contracts.TxRunner
	clock  clock.Clock
}

// NewInteractor creates a new deactivate user interactor.
func NewInteractor(users contracts.UserRepository, events contracts.EventRepository, tx contracts.TxRunner, clock clock.Clock) *Interactor {
	return &Interactor{users: users, events: events, tx: tx, clock: clock}
}

// Execute marks the user inactive. Existing sessions expire on their own.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	return i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		user, err := i.users.Get(ctx, txn, req.UserID)
		if err != nil {
			return err
		}
		if err := user.Deactivate(req.ActorID, i.clock.Now()); err != nil {
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
