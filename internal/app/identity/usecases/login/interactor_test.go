package login

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/app/identity/identitytest"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
)

const password = "Secret12"

type fixture struct {
	store    *identitytest.Store
	clock    *clock.MockClock
	sessions *identitytest.Sessions
	login    *Interactor
}

func setup(t *testing.T) *fixture {
	t.Helper()
	hash, err := domain.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)

	store := identitytest.NewStore()
	store.PutUser("u1", identitytest.UserRow{Username: "ana", PasswordHash: hash, Role: domain.RoleCustomer, Active: true})
	store.PutUser("u2", identitytest.UserRow{Username: "gone", PasswordHash: hash, Role: domain.RoleCustomer, Active: false})

	clk := clock.NewMockClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	sessions := &identitytest.Sessions{TTL: 10 * time.Minute, Now: clk.Now}

	return &fixture{
		store:    store,
		clock:    clk,
		sessions: sessions,
		login:    NewInteractor(store.Users(), store.Attempts(), store.EventRepo(), store, sessions, clk, domain.DefaultPolicy),
	}
}

func (f *fixture) attempt(user, pass string) (*Response, error) {
	return f.login.Execute(context.Background(), &Request{Username: user, Password: pass})
}

func TestLogin_Success(t *testing.T) {
	f := setup(t)

	resp, err := f.attempt("ana", password)
	require.NoError(t, err)

	assert.Equal(t, "token-u1", resp.Token)
	assert.Equal(t, domain.RoleCustomer, resp.Role)
	assert.Equal(t, f.clock.Now().Add(10*time.Minute), resp.ExpiresAt)
	require.Len(t, f.sessions.Issued, 1)
	assert.Equal(t, "customer", f.sessions.Issued[0].Role)

	_, exists := f.store.Attempt("u1")
	assert.False(t, exists, "success on a clean account writes nothing")
}

func TestLogin_FailuresLockTheAccount(t *testing.T) {
	f := setup(t)

	for _, want := range []int64{4, 3, 2, 1} {
		_, err := f.attempt("ana", "wrong")
		var credErr *domain.CredentialsError
		require.ErrorAs(t, err, &credErr)
		assert.Equal(t, want, credErr.AttemptsLeft)
	}

	_, err := f.attempt("ana", "wrong")
	var locked *domain.LockedError
	require.ErrorAs(t, err, &locked)
	assert.Equal(t, int64(120), locked.Minutes())

	row, _ := f.store.Attempt("u1")
	assert.Equal(t, int64(5), row.FailureCount)
	require.NotNil(t, row.LockedUntil)
	assert.Equal(t, f.clock.Now().Add(2*time.Hour), *row.LockedUntil)

	events := f.store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "user.account_locked", events[0].EventType())

	f.clock.Advance(30 * time.Minute)
	_, err = f.attempt("ana", password)
	require.ErrorAs(t, err, &locked, "correct password is still refused")
	assert.Equal(t, int64(90), locked.Minutes())
	assert.Empty(t, f.sessions.Issued)

	row, _ = f.store.Attempt("u1")
	assert.Equal(t, int64(5), row.FailureCount, "attempts while locked are not counted")

	f.clock.Advance(90 * time.Minute)
	_, err = f.attempt("ana", password)
	require.NoError(t, err)

	row, _ = f.store.Attempt("u1")
	assert.Zero(t, row.FailureCount)
	assert.Nil(t, row.LockedUntil)
}

func TestLogin_SuccessResetsCounter(t *testing.T) {
	f := setup(t)

	for n := 0; n < 3; n++ {
		_, err := f.attempt("ana", "wrong")
		require.Error(t, err)
	}
	_, err := f.attempt("ana", password)
	require.NoError(t, err)

	_, err = f.attempt("ana", "wrong")
	var credErr *domain.CredentialsError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, int64(4), credErr.AttemptsLeft)
}

func TestLogin_UnknownOrInactiveUser(t *testing.T) {
	f := setup(t)

	for _, username := range []string{"nobody", "gone"} {
		_, err := f.attempt(username, password)
		var credErr *domain.CredentialsError
		require.ErrorAs(t, err, &credErr, username)
		assert.Zero(t, credErr.AttemptsLeft)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	_, exists := f.store.Attempt("u2")
	assert.False(t, exists)
}

func TestLogin_RequiresCredentials(t *testing.T) {
	f := setup(t)

	_, err := f.attempt("", password)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}
