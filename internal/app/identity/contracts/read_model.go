package contracts

import (
	"context"
	"time"
)

// UserDTO is a user as listed to admins.
type UserDTO struct {
	UserID    string
	Username  string
	Email     string
	FullName  string
	Role      string
	Active    bool
	Locked    bool
	CreatedAt time.Time
}

// UserFilter narrows ListUsers.
type UserFilter struct {
	Role   string
	Limit  int64
	Offset int64
}

// ReadModel serves identity queries.
type ReadModel interface {
	ListUsers(ctx context.Context, filter UserFilter) ([]*UserDTO, error)
}
