package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
	"github.com/light-bringer/backoffice-service/internal/pkg/session"
)

// TxRunner runs read-then-write work in one transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn committer.TxFunc) error
}

// UserRepository reads users and builds user mutations.
type UserRepository interface {
	Get(ctx context.Context, rd query.Reader, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, rd query.Reader, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, rd query.Reader, username string) (bool, error)
	// EmailExists compares case-insensitively.
	EmailExists(ctx context.Context, rd query.Reader, email string) (bool, error)
	Count(ctx context.Context, rd query.Reader) (int64, error)
	InsertMut(user *domain.User) *spanner.Mutation
	UpdateMut(user *domain.User) *spanner.Mutation
}

// LoginAttemptRepository persists throttle state.
type LoginAttemptRepository interface {
	// Get returns an Open attempt when the account has no row yet.
	Get(ctx context.Context, rd query.Reader, userID string) (*domain.LoginAttempt, error)
	UpsertMut(attempt *domain.LoginAttempt) *spanner.Mutation
}

// EventRepository builds outbox mutations.
type EventRepository interface {
	InsertMuts(events []outbox.Event) ([]*spanner.Mutation, error)
}

// SessionIssuer signs session tokens.
type SessionIssuer interface {
	Issue(p session.Principal) (string, time.Time, error)
}
