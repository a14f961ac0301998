package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
)

const (
	defaultUserLimit = 50
	maxUserLimit     = 500
)

// ReadModel implements contracts.ReadModel for Spanner.
type ReadModel struct {
	client *spanner.Client
	clock  clock.Clock
}

// NewReadModel creates a new identity ReadModel.
func NewReadModel(client *spanner.Client, clk clock.Clock) contracts.ReadModel {
	return &ReadModel{client: client, clock: clk}
}

// ListUsers returns users ordered by username, flagging running lockouts.
func (rm *ReadModel) ListUsers(ctx context.Context, filter contracts.UserFilter) ([]*contracts.UserDTO, error) {
	iter := rm.client.Single().Query(ctx, listUsersStatement(filter, rm.clock.Now()))
	defer iter.Stop()

	var users []*contracts.UserDTO
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}

		var (
			dto   contracts.UserDTO
			email spanner.NullString
		)
		if err := row.Columns(&dto.UserID, &dto.Username, &email, &dto.FullName, &dto.Role, &dto.Active, &dto.CreatedAt, &dto.Locked); err != nil {
			return nil, fmt.Errorf("failed to parse user: %w", err)
		}
		dto.Email = email.StringVal
		users = append(users, &dto)
	}

	return users, nil
}

func listUsersStatement(filter contracts.UserFilter, now time.Time) spanner.Statement {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultUserLimit
	}
	if limit > maxUserLimit {
		limit = maxUserLimit
	}

	sql := `SELECT u.user_id, u.username, u.email, u.full_name, u.role, u.active, u.created_at,
       COALESCE(a.locked_until > @now, FALSE) AS locked
FROM users u
LEFT JOIN login_attempts a ON a.user_id = u.user_id`
	params := map[string]interface{}{
		"now":    now,
		"limit":  limit,
		"offset": filter.Offset,
	}
	if filter.Role != "" {
		sql += "\nWHERE u.role = @role"
		params["role"] = filter.Role
	}
	sql += "\nORDER BY u.username\nLIMIT @limit OFFSET @offset"

	return spanner.Statement{SQL: sql, Params: params}
}
