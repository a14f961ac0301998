package list_users

import (
	"context"

	"github.com/light-bringer/backoffice-service/internal/app/identity/contracts"
	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
)

// Request filters the user list.
type Request struct {
	Role   string
	Limit  int64
	Offset int64
}

// Query handles the list users query.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new list users query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute lists users, optionally restricted to one role.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.UserDTO, error) {
	if req.Role != "" {
		if _, err := domain.ParseRole(req.Role); err != nil {
			return nil, err
		}
	}
	filter := contracts.UserFilter{
		Role:   req.Role,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return q.readModel.ListUsers(ctx, filter)
}
