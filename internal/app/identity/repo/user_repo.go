package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/models/m_user"
	"github.com/light-bringer/backoffice-service/internal/pkg/query"
)

// UserRepo implements contracts.UserRepository for Spanner.
type UserRepo struct {
	model *m_user.Model
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo() contracts.UserRepository {
	return &UserRepo{model: m_user.NewModel()}
}

// Get returns a user by id.
func (r *UserRepo) Get(ctx context.Context, rd query.Reader, userID string) (*domain.User, error) {
	row, err := rd.ReadRow(ctx, m_user.TableName, spanner.Key{userID}, m_user.Columns)
	if err != nil {
		if query.IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	return rowToUser(row)
}

// GetByUsername looks a user up through the unique username index.
func (r *UserRepo) GetByUsername(ctx context.Context, rd query.Reader, username string) (*domain.User, error) {
	row, err := rd.ReadRowUsingIndex(ctx, m_user.TableName, m_user.UsernameIndex, spanner.Key{username}, []string{m_user.UserID})
	if err != nil {
		if query.IsNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to read user by username: %w", err)
	}

	var userID string
	if err := row.Column(0, &userID); err != nil {
		return nil, fmt.Errorf("failed to parse user id: %w", err)
	}
	return r.Get(ctx, rd, userID)
}

// UsernameExists reports whether the username is taken, ignoring case.
func (r *UserRepo) UsernameExists(ctx context.Context, rd query.Reader, username string) (bool, error) {
	return r.exists(ctx, rd, query.EqFold(m_user.Username, username))
}

// EmailExists reports whether another user registered email, ignoring case.
func (r *UserRepo) EmailExists(ctx context.Context, rd query.Reader, email string) (bool, error) {
	return r.exists(ctx, rd, query.EqFold(m_user.Email, email))
}

// Count returns the number of users.
func (r *UserRepo) Count(ctx context.Context, rd query.Reader) (int64, error) {
	stmt := query.From(m_user.TableName).Count().Build()
	return countRows(ctx, rd, stmt)
}

func (r *UserRepo) exists(ctx context.Context, rd query.Reader, cond query.Condition) (bool, error) {
	stmt := query.From(m_user.TableName).Where(cond).Count().Build()
	n, err := countRows(ctx, rd, stmt)
	return n > 0, err
}

// InsertMut creates the insert mutation for a new user.
func (r *UserRepo) InsertMut(user *domain.User) *spanner.Mutation {
	return r.model.InsertMut(&m_user.Data{
		UserID:       user.ID(),
		Username:     user.Username(),
		Email:        spanner.NullString{StringVal: user.Email(), Valid: user.Email() != ""},
		FullName:     user.FullName(),
		PasswordHash: user.PasswordHash(),
		Role:         string(user.Role()),
		Active:       user.Active(),
	})
}

// UpdateMut writes only the dirty fields.
func (r *UserRepo) UpdateMut(user *domain.User) *spanner.Mutation {
	changes := user.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	if changes.Dirty(domain.FieldRole) {
		updates[m_user.Role] = string(user.Role())
	}
	if changes.Dirty(domain.FieldActive) {
		updates[m_user.Active] = user.Active()
	}

	return r.model.UpdateMut(user.ID(), updates)
}

func rowToUser(row *spanner.Row) (*domain.User, error) {
	var data m_user.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	return domain.ReconstructUser(
		data.UserID,
		data.Username,
		data.Email.StringVal,
		data.FullName,
		data.PasswordHash,
		domain.Role(data.Role),
		data.Active,
		data.CreatedAt,
	), nil
}

func countRows(ctx context.Context, rd query.Reader, stmt spanner.Statement) (int64, error) {
	iter := rd.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	var n int64
	if err := row.Column(0, &n); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return n, nil
}
