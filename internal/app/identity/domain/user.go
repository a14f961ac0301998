package domain

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/light-bringer/backoffice-service/internal/pkg/changes"
	"github.com/light-bringer/backoffice-service/internal/pkg/outbox"
)

// Field names for change tracking
const (
	FieldRole   = "role"
	FieldActive = "active"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]{3,150}$`)

// User is an account that can log in with one role.
type User struct {
	id           string
	username     string
	email        string
	fullName     string
	passwordHash string
	role         Role
	active       bool
	createdAt    time.Time

	changes *changes.Tracker
	events  []outbox.Event
}

// NewUser creates an active user. email may be empty.
func NewUser(id, username, email, fullName, passwordHash string, role Role, now time.Time) (*User, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	email = strings.TrimSpace(email)
	if email != "" {
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			return nil, ErrInvalidEmail
		}
	}

	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}

	u := &User{
		id:           id,
		username:     username,
		email:        email,
		fullName:     strings.TrimSpace(fullName),
		passwordHash: passwordHash,
		role:         role,
		active:       true,
		createdAt:    now,
		changes:      changes.NewTracker(),
	}
	u.events = append(u.events, &UserCreatedEvent{
		UserID:   id,
		Username: username,
		Role:     string(role),
		At:       now,
	})
	return u, nil
}

// ReconstructUser rebuilds a stored user.
func ReconstructUser(id, username, email, fullName, passwordHash string, role Role, active bool, createdAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		email:        email,
		fullName:     fullName,
		passwordHash: passwordHash,
		role:         role,
		active:       active,
		createdAt:    createdAt,
		changes:      changes.NewTracker(),
	}
}

func (u *User) ID() string                   { return u.id }
func (u *User) Username() string             { return u.username }
func (u *User) Email() string                { return u.email }
func (u *User) FullName() string             { return u.fullName }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) Role() Role                   { return u.role }
func (u *User) Active() bool                 { return u.active }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) Changes() *changes.Tracker    { return u.changes }
func (u *User) DomainEvents() []outbox.Event { return u.events }

// ChangeRole assigns a new role. actorID is the admin making the change.
func (u *User) ChangeRole(role Role, actorID string, now time.Time) error {
	if _, err := ParseRole(string(role)); err != nil {
		return err
	}
	if u.id == actorID && role != RoleAdmin {
		return ErrCannotModifySelf
	}
	if u.role == role {
		return nil
	}

	old := u.role
	u.role = role
	u.changes.MarkDirty(FieldRole)
	u.events = append(u.events, &UserRoleChangedEvent{
		UserID:  u.id,
		OldRole: string(old),
		NewRole: string(role),
		ActorID: actorID,
		At:      now,
	})
	return nil
}

// Deactivate prevents the user from logging in.
func (u *User) Deactivate(actorID string, now time.Time) error {
	if u.id == actorID {
		return ErrCannotModifySelf
	}
	if !u.active {
		return nil
	}

	u.active = false
	u.changes.MarkDirty(FieldActive)
	u.events = append(u.events, &UserDeactivatedEvent{
		UserID:  u.id,
		ActorID: actorID,
		At:      now,
	})
	return nil
}
