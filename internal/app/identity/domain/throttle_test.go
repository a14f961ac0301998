package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestLoginAttempt_FailuresCountDownThenLock(t *testing.T) {
	a := NewLoginAttempt("u1")

	for _, want := range []int64{4, 3, 2, 1} {
		require.NoError(t, a.CheckBlocked(t0))
		out := a.RecordFailure(t0, DefaultPolicy)
		assert.False(t, out.Locked)
		assert.Equal(t, want, out.AttemptsLeft)

		var credErr *CredentialsError
		require.ErrorAs(t, out.Err(t0), &credErr)
		assert.Equal(t, want, credErr.AttemptsLeft)
	}

	out := a.RecordFailure(t0, DefaultPolicy)
	assert.True(t, out.Locked)
	assert.Equal(t, t0.Add(2*time.Hour), out.LockedUntil)
	assert.ErrorIs(t, out.Err(t0), ErrAccountLocked)
	assert.Equal(t, int64(5), a.FailureCount())
}

func TestLoginAttempt_CheckBlocked(t *testing.T) {
	until := t0.Add(2 * time.Hour)
	a := ReconstructLoginAttempt("u1", 5, &until)

	err := a.CheckBlocked(t0.Add(30*time.Minute + 59*time.Second))
	var locked *LockedError
	require.True(t, errors.As(err, &locked))
	assert.Equal(t, int64(89), locked.Minutes(), "remaining time rounds down")
	assert.ErrorIs(t, err, ErrAccountLocked)
	assert.Contains(t, err.Error(), "89 minutes")

	assert.NoError(t, a.CheckBlocked(until), "expiry instant is open")
	assert.NoError(t, a.CheckBlocked(until.Add(time.Minute)))
	assert.NotNil(t, a.LockedUntil(), "lazy expiry leaves the row alone")
}

func TestLoginAttempt_FailureAfterExpiredLockStartsOver(t *testing.T) {
	until := t0.Add(2 * time.Hour)
	a := ReconstructLoginAttempt("u1", 5, &until)

	out := a.RecordFailure(until.Add(time.Second), DefaultPolicy)
	assert.False(t, out.Locked)
	assert.Equal(t, int64(4), out.AttemptsLeft)
	assert.Nil(t, a.LockedUntil())
}

func TestLoginAttempt_RecordSuccess(t *testing.T) {
	until := t0.Add(time.Hour)
	a := ReconstructLoginAttempt("u1", 5, &until)

	a.RecordSuccess()
	assert.Zero(t, a.FailureCount())
	assert.Nil(t, a.LockedUntil())
	assert.True(t, a.Dirty())

	fresh := ReconstructLoginAttempt("u2", 0, nil)
	fresh.RecordSuccess()
	assert.False(t, fresh.Dirty(), "success on an open account changes nothing")
	assert.Zero(t, fresh.FailureCount())
}

func TestLoginAttempt_CustomPolicy(t *testing.T) {
	policy := Policy{MaxFailures: 2, LockoutDuration: 10 * time.Minute}
	a := NewLoginAttempt("u1")

	assert.Equal(t, int64(1), a.RecordFailure(t0, policy).AttemptsLeft)
	out := a.RecordFailure(t0, policy)
	assert.True(t, out.Locked)
	assert.Equal(t, t0.Add(10*time.Minute), out.LockedUntil)
}
