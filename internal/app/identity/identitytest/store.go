// Package identitytest provides an in-memory identity store for use case tests.
//
// Writes made through the repositories are staged and applied only when the
// transaction function returns nil.
package identitytest

import (
	"context"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/committer"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
	"github.com/light-bringer/backoffice-service/internal/pkg/session"
)

// UserRow is a stored user.
type UserRow struct {
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Role         domain.Role
	Active       bool
}

// AttemptRow is stored throttle state.
type AttemptRow struct {
	FailureCount int64
	LockedUntil  *time.Time
}

// Store is an in-memory, transactional stand-in for Spanner.
type Store struct {
	mu       sync.Mutex
	users    map[string]*UserRow
	attempts map[string]*AttemptRow
	events   []outbox.Event
	pending  []func()
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		users:    map[string]*UserRow{},
		attempts: map[string]*AttemptRow{},
	}
}

// PutUser stores or replaces a user.
func (s *Store) PutUser(id string, row UserRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := row
	s.users[id] = &r
}

// PutAttempt stores throttle state for a user.
func (s *Store) PutAttempt(userID string, row AttemptRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := row
	s.attempts[userID] = &r
}

// User returns a copy of a stored user and whether it exists.
func (s *Store) User(id string) (UserRow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.users[id]
	if !ok {
		return UserRow{}, false
	}
	return *r, true
}

// UserIDByName returns the id of the user with username, or "".
func (s *Store) UserIDByName(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Username == username {
			return id
		}
	}
	return ""
}

// UserCount returns the number of stored users.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Attempt returns the stored throttle state and whether a row exists.
func (s *Store) Attempt(userID string) (AttemptRow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[userID]
	if !ok {
		return AttemptRow{}, false
	}
	return *a, true
}

// Events returns the committed events.
func (s *Store) Events() []outbox.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]outbox.Event(nil), s.events...)
}

// RunInTx runs fn serialized against every other transaction.
func (s *Store) RunInTx(ctx context.Context, fn committer.TxFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = nil
	if err := fn(ctx, nil, committer.NewPlan()); err != nil {
		s.pending = nil
		return err
	}
	for _, apply := range s.pending {
		apply()
	}
	s.pending = nil
	return nil
}

func (s *Store) stage(apply func()) {
	s.pending = append(s.pending, apply)
}

// Users returns the user repository view of the store.
func (s *Store) Users() contracts.UserRepository { return userRepo{s} }

// Attempts returns the login attempt repository view of the store.
func (s *Store) Attempts() contracts.LoginAttemptRepository { return attemptRepo{s} }

// EventRepo returns the event repository view of the store.
func (s *Store) EventRepo() contracts.EventRepository { return eventRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Get(_ context.Context, _ query.Reader, userID string) (*domain.User, error) {
	u, ok := r.s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return domain.ReconstructUser(userID, u.Username, u.Email, u.FullName, u.PasswordHash, u.Role, u.Active, time.Time{}), nil
}

func (r userRepo) GetByUsername(ctx context.Context, rd query.Reader, username string) (*domain.User, error) {
	for id, u := range r.s.users {
		if u.Username == username {
			return r.Get(ctx, rd, id)
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r userRepo) UsernameExists(_ context.Context, _ query.Reader, username string) (bool, error) {
	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepo) EmailExists(_ context.Context, _ query.Reader, email string) (bool, error) {
	for _, u := range r.s.users {
		if u.Email != "" && strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepo) Count(context.Context, query.Reader) (int64, error) {
	return int64(len(r.s.users)), nil
}

func (r userRepo) InsertMut(user *domain.User) *spanner.Mutation {
	id := user.ID()
	row := UserRow{
		Username:     user.Username(),
		Email:        user.Email(),
		FullName:     user.FullName(),
		PasswordHash: user.PasswordHash(),
		Role:         user.Role(),
		Active:       user.Active(),
	}
	r.s.stage(func() { r.s.users[id] = &row })
	return spanner.Insert("users", []string{"user_id"}, []interface{}{id})
}

func (r userRepo) UpdateMut(user *domain.User) *spanner.Mutation {
	if !user.Changes().HasChanges() {
		return nil
	}
	id, role, active := user.ID(), user.Role(), user.Active()
	r.s.stage(func() {
		r.s.users[id].Role = role
		r.s.users[id].Active = active
	})
	return spanner.Update("users", []string{"user_id"}, []interface{}{id})
}

type attemptRepo struct{ s *Store }

func (r attemptRepo) Get(_ context.Context, _ query.Reader, userID string) (*domain.LoginAttempt, error) {
	a, ok := r.s.attempts[userID]
	if !ok {
		return domain.NewLoginAttempt(userID), nil
	}
	return domain.ReconstructLoginAttempt(userID, a.FailureCount, a.LockedUntil), nil
}

func (r attemptRepo) UpsertMut(attempt *domain.LoginAttempt) *spanner.Mutation {
	if !attempt.Dirty() {
		return nil
	}
	id := attempt.UserID()
	row := AttemptRow{FailureCount: attempt.FailureCount(), LockedUntil: attempt.LockedUntil()}
	r.s.stage(func() { r.s.attempts[id] = &row })
	return spanner.InsertOrUpdate("login_attempts", []string{"user_id"}, []interface{}{id})
}

type eventRepo struct{ s *Store }

func (r eventRepo) InsertMuts(events []outbox.Event) ([]*spanner.Mutation, error) {
	evs := append([]outbox.Event(nil), events...)
	r.s.stage(func() { r.s.events = append(r.s.events, evs...) })
	muts := make([]*spanner.Mutation, 0, len(evs))
	for _, e := range evs {
		muts = append(muts, spanner.Insert("outbox_events", []string{"aggregate_id"}, []interface{}{e.AggregateID()}))
	}
	return muts, nil
}

// Sessions is a SessionIssuer that hands out predictable tokens.
type Sessions struct {
	TTL    time.Duration
	Now    func() time.Time
	Issued []session.Principal
}

// Issue records p and returns "token-<user id>".
func (s *Sessions) Issue(p session.Principal) (string, time.Time, error) {
	s.Issued = append(s.Issued, p)
	return "token-" + p.UserID, s.Now().Add(s.TTL), nil
}
