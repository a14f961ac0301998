package domain

import "time"

// UserCreatedEvent is emitted for every new account.
type UserCreatedEvent struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	At       time.Time `json:"at"`
}

func (e *UserCreatedEvent) EventType() string   { return "user.created" }
func (e *UserCreatedEvent) AggregateID() string { return e.UserID }

// UserRoleChangedEvent is emitted when an admin changes a role.
type UserRoleChangedEvent struct {
	UserID  string    `json:"user_id"`
	OldRole string    `json:"old_role"`
	NewRole string    `json:"new_role"`
	ActorID string    `json:"actor_id"`
	At      time.Time `json:"at"`
}

func (e *UserRoleChangedEvent) EventType() string   { return "user.role_changed" }
func (e *UserRoleChangedEvent) AggregateID() string { return e.UserID }

// UserDeactivatedEvent is emitted when an admin disables an account.
type UserDeactivatedEvent struct {
	UserID  string    `json:"user_id"`
	ActorID string    `json:"actor_id"`
	At      time.Time `json:"at"`
}

func (e *UserDeactivatedEvent) EventType() string   { return "user.deactivated" }
func (e *UserDeactivatedEvent) AggregateID() string { return e.UserID }

// AccountLockedEvent is emitted when a failure crosses the threshold.
type AccountLockedEvent struct {
	UserID      string    `json:"user_id"`
	LockedUntil time.Time `json:"locked_until"`
	At          time.Time `json:"at"`
}

func (e *AccountLockedEvent) EventType() string   { return "user.account_locked" }
func (e *AccountLockedEvent) AggregateID() string { return e.UserID }
