package login

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/session"
)

// Request carries login credentials.
type Request struct {
	Username string
	Password string
}

// Response is an issued session.
type Response struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	Username  string
	Role      domain.Role
}

// Interactor handles the login use case.
type Interactor struct {
	users    contracts.UserRepository
	attempts contracts.LoginAttemptRepository
	events   contracts.EventRepository
	tx       contracts.TxRunner
	sessions contracts.SessionIssuer
	clock    clock.Clock
	policy   domain.Policy
}

// NewInteractor creates a new login interactor.
func NewInteractor(
	users contracts.UserRepository,
	attempts contracts.LoginAttemptRepository,
	events contracts.EventRepository,
	tx contracts.TxRunner,
	sessions contracts.SessionIssuer,
	clock clock.Clock,
	policy domain.Policy,
) *Interactor {
	return &Interactor{
		users:    users,
		attempts: attempts,
		events:   events,
		tx:       tx,
		sessions: sessions,
		clock:    clock,
		policy:   policy,
	}
}

// Execute authenticates the user. Unknown and inactive accounts fail with a
// generic *domain.CredentialsError and leave no throttle state behind. A
// locked account fails with *domain.LockedError before the password is
// checked.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidRequest)
	}

	user, err := i.lookup(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	ok, err := domain.PasswordMatches(user.PasswordHash(), req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, i.recordFailure(ctx, user.ID())
	}

	if err := i.recordSuccess(ctx, user.ID()); err != nil {
		return nil, err
	}

	token, expiresAt, err := i.sessions.Issue(session.Principal{
		UserID:   user.ID(),
		Username: user.Username(),
		Role:     string(user.Role()),
	})
	if err != nil {
		return nil, err
	}

	return &Response{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID(),
		Username:  user.Username(),
		Role:      user.Role(),
	}, nil
}

// lookup resolves the account and runs the first lockout check.
func (i *Interactor) lookup(ctx context.Context, username string) (*domain.User, error) {
	var user *domain.User
	err := i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, _ *committer.CommitPlan) error {
		u, err := i.users.GetByUsername(ctx, txn, username)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return &domain.CredentialsError{}
			}
			return err
		}
		if !u.Active() {
			return &domain.CredentialsError{}
		}

		attempt, err := i.attempts.Get(ctx, txn, u.ID())
		if err != nil {
			return err
		}
		if err := attempt.CheckBlocked(i.clock.Now()); err != nil {
			return err
		}

		user = u
		return nil
	})
	return user, err
}

// recordFailure counts the failed check and returns the error to report.
func (i *Interactor) recordFailure(ctx context.Context, userID string) error {
	var result error
	err := i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		attempt, err := i.attempts.Get(ctx, txn, userID)
		if err != nil {
			return err
		}

		now := i.clock.Now()
		if err := attempt.CheckBlocked(now); err != nil {
			// Locked by a concurrent attempt; nothing to count.
			result = err
			return nil
		}

		outcome := attempt.RecordFailure(now, i.policy)
		plan.Add(i.attempts.UpsertMut(attempt))

		if outcome.Locked {
			eventMuts, err := i.events.InsertMuts([]outbox.Event{&domain.AccountLockedEvent{
				UserID:      userID,
				LockedUntil: outcome.LockedUntil,
				At:          now,
			}})
			if err != nil {
				return err
			}
			plan.AddMultiple(eventMuts)
		}

		result = outcome.Err(now)
		return nil
	})
	if err != nil {
		return err
	}
	return result
}

// recordSuccess re-checks the lockout right before the session is granted
// and resets the counter in the same transaction.
func (i *Interactor) recordSuccess(ctx context.Context, userID string) error {
	return i.tx.RunInTx(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction, plan *committer.CommitPlan) error {
		attempt, err := i.attempts.Get(ctx, txn, userID)
		if err != nil {
			return err
		}
		if err := attempt.CheckBlocked(i.clock.Now()); err != nil {
			return err
		}

		attempt.RecordSuccess()
		plan.Add(i.attempts.UpsertMut(attempt))
		return nil
	})
}
