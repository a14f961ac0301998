package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/models/m_login_attempt"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

// LoginAttemptRepo implements contracts.LoginAttemptRepository for Spanner.
type LoginAttemptRepo struct {
	model *m_login_attempt.Model
}

// NewLoginAttemptRepo creates a new LoginAttemptRepo.
func NewLoginAttemptRepo() contracts.LoginAttemptRepository {
	return &LoginAttemptRepo{model: m_login_attempt.NewModel()}
}

// Get returns the stored throttle state, or an Open one when none exists.
func (r *LoginAttemptRepo) Get(ctx context.Context, rd query.Reader, userID string) (*domain.LoginAttempt, error) {
	row, err := rd.ReadRow(ctx, m_login_attempt.TableName, spanner.Key{userID}, m_login_attempt.Columns)
	if err != nil {
		if query.IsNotFound(err) {
			return domain.NewLoginAttempt(userID), nil
		}
		return nil, fmt.Errorf("failed to read login attempt: %w", err)
	}

	var data m_login_attempt.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse login attempt: %w", err)
	}

	var lockedUntil *time.Time
	if data.LockedUntil.Valid {
		t := data.LockedUntil.Time
		lockedUntil = &t
	}
	return domain.ReconstructLoginAttempt(data.UserID, data.FailureCount, lockedUntil), nil
}

// UpsertMut writes the state when it changed.
func (r *LoginAttemptRepo) UpsertMut(attempt *domain.LoginAttempt) *spanner.Mutation {
	if !attempt.Dirty() {
		return nil
	}

	data := &m_login_attempt.Data{
		UserID:       attempt.UserID(),
		FailureCount: attempt.FailureCount(),
	}
	if until := attempt.LockedUntil(); until != nil {
		data.LockedUntil = spanner.NullTime{Time: *until, Valid: true}
	}
	return r.model.UpsertMut(data)
}
