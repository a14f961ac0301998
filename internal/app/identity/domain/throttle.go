package domain

import "time"

// Policy configures the login throttle.
type Policy struct {
	MaxFailures     int64
	LockoutDuration time.Duration
}

// DefaultPolicy locks an account for two hours after five consecutive failures.
var DefaultPolicy = Policy{MaxFailures: 5, LockoutDuration: 2 * time.Hour}

// LoginAttempt is the per-account failure counter and lockout timer.
// The zero value (after NewLoginAttempt) is an Open account.
type LoginAttempt struct {
	userID       string
	failureCount int64
	lockedUntil  *time.Time
	dirty        bool
}

// NewLoginAttempt returns the throttle state of an account that never failed.
func NewLoginAttempt(userID string) *LoginAttempt {
	return &LoginAttempt{userID: userID}
}

// ReconstructLoginAttempt rebuilds stored throttle state.
func ReconstructLoginAttempt(userID string, failureCount int64, lockedUntil *time.Time) *LoginAttempt {
	return &LoginAttempt{userID: userID, failureCount: failureCount, lockedUntil: lockedUntil}
}

func (a *LoginAttempt) UserID() string      { return a.userID }
func (a *LoginAttempt) FailureCount() int64 { return a.failureCount }
func (a *LoginAttempt) Dirty() bool         { return a.dirty }

// LockedUntil returns a copy of the lockout expiry, or nil.
func (a *LoginAttempt) LockedUntil() *time.Time {
	if a.lockedUntil == nil {
		return nil
	}
	t := *a.lockedUntil
	return &t
}

// CheckBlocked returns a *LockedError while the lockout is running. An
// expired lockout is treated as Open without being cleared.
func (a *LoginAttempt) CheckBlocked(now time.Time) error {
	if a.lockedUntil == nil || !a.lockedUntil.After(now) {
		return nil
	}
	return &LockedError{Remaining: a.lockedUntil.Sub(now)}
}

// FailureOutcome is the result of RecordFailure.
type FailureOutcome struct {
	Locked       bool
	LockedUntil  time.Time
	AttemptsLeft int64
}

// Err returns the error a login caller should see for this outcome.
func (o FailureOutcome) Err(now time.Time) error {
	if o.Locked {
		return &LockedError{Remaining: o.LockedUntil.Sub(now)}
	}
	return &CredentialsError{AttemptsLeft: o.AttemptsLeft}
}

// RecordFailure counts one failed password check. Reaching the threshold
// locks the account for the policy duration. The first failure after an
// expired lockout starts a new count.
func (a *LoginAttempt) RecordFailure(now time.Time, policy Policy) FailureOutcome {
	if a.lockedUntil != nil && !a.lockedUntil.After(now) {
		a.failureCount = 0
		a.lockedUntil = nil
	}

	a.failureCount++
	a.dirty = true

	if a.failureCount >= policy.MaxFailures {
		until := now.Add(policy.LockoutDuration)
		a.lockedUntil = &until
		return FailureOutcome{Locked: true, LockedUntil: until}
	}
	return FailureOutcome{AttemptsLeft: policy.MaxFailures - a.failureCount}
}

// RecordSuccess resets the counter and clears any lockout. It only marks the
// state dirty when something actually changed.
func (a *LoginAttempt) RecordSuccess() {
	if a.failureCount == 0 && a.lockedUntil == nil {
		return
	}
	a.failureCount = 0
	a.lockedUntil = nil
	a.dirty = true
}
