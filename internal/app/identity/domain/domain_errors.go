package domain

import (
	"fmt"
	"time"

	"github.com/light-bringer/backoffice-service/internal/pkg/apperr"
)

// Domain errors as sentinel values
var (
	ErrInvalidRequest      = apperr.New(apperr.ErrInvalidArgument, "invalid request")
	ErrInvalidRole         = apperr.New(apperr.ErrInvalidArgument, "unknown role")
	ErrInvalidUsername     = apperr.New(apperr.ErrInvalidArgument, "username must be 3 to 150 letters, digits or @.+-_")
	ErrInvalidEmail        = apperr.New(apperr.ErrInvalidArgument, "invalid email address")
	ErrPasswordMismatch    = apperr.New(apperr.ErrInvalidArgument, "passwords do not match")
	ErrPasswordTooShort    = apperr.New(apperr.ErrInvalidArgument, "password must be at least 8 characters long")
	ErrPasswordNoUppercase = apperr.New(apperr.ErrInvalidArgument, "password must contain at least one uppercase letter")
	ErrPasswordNoDigit     = apperr.New(apperr.ErrInvalidArgument, "password must contain at least one digit")
	ErrUsernameTaken       = apperr.New(apperr.ErrAlreadyExists, "username already taken")
	ErrEmailTaken          = apperr.New(apperr.ErrAlreadyExists, "email already registered")
	ErrUserNotFound        = apperr.New(apperr.ErrNotFound, "user not found")
	ErrCannotModifySelf    = apperr.New(apperr.ErrFailedPrecondition, "admins cannot deactivate or demote themselves")
	ErrInvalidCredentials  = apperr.New(apperr.ErrUnauthenticated, "invalid username or password")
	ErrAccountLocked       = apperr.New(apperr.ErrLocked, "account temporarily locked")
)

// CredentialsError is a failed login that did not lock the account.
type CredentialsError struct {
	// AttemptsLeft is zero when the account is unknown.
	AttemptsLeft int64
}

func (e *CredentialsError) Error() string {
	if e.AttemptsLeft > 0 {
		return fmt.Sprintf("%s, %d attempts left", ErrInvalidCredentials, e.AttemptsLeft)
	}
	return ErrInvalidCredentials.Error()
}

func (e *CredentialsError) Unwrap() error { return ErrInvalidCredentials }

// LockedError reports an account under lockout.
type LockedError struct {
	Remaining time.Duration
}

// Minutes is the remaining lock time rounded down to whole minutes.
func (e *LockedError) Minutes() int64 {
	return int64(e.Remaining / time.Minute)
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s, try again in %d minutes", ErrAccountLocked, e.Minutes())
}

func (e *LockedError) Unwrap() error { return ErrAccountLocked }
