package register_customer

import (
	"context"
	"strings"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"

	"github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
)

// Request is a self-registration form.
type Request struct {
	FullName        string
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// Response identifies the new account.
type Response struct {
	UserID string
}

// Interactor handles customer self-registration.
type Interactor struct {
	users      contracts.UserRepository
	events     contracts.EventRepository
	tx         contracts.TxRunner
	clock      clock.Clock
	bcryptCost int
}

// NewInteractor creates a new register customer interactor.
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

// Execute creates an active customer account.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, domain.ErrInvalidEmail
	}
	if req.Password != req.PasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}
	if err := domain.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	hash, err := domain.HashPassword(req.Password, i.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(uuid.New().String(), req.Username, req.Email, req.FullName, hash, domain.RoleCustomer, i.clock.Now())
	if err != nil {
		return nil, err
	}

	err = i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		taken, err := i.users.UsernameExists(ctx, txn, user.Username())
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrUsernameTaken
		}

		taken, err = i.users.EmailExists(ctx, txn, user.Email())
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrEmailTaken
		}

		plan.Add(i.users.InsertMut(user))
		eventMuts, err := i.events.InsertMuts(user.DomainEvents())
		if err != nil {
			return err
		}
		plan.AddMultiple(eventMuts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Response{UserID: user.ID()}, nil
}
