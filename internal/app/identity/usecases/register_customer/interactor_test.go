package register_customer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/app/identity/identitytest"
	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
)

func validRequest() *Request {
	return &Request{
		FullName:        "Ana Pérez",
		Username:        "ana",
		Email:           "ana@example.com",
		Password:        "Secret12",
		PasswordConfirm: "Secret12",
	}
}

func TestRegisterCustomer(t *testing.T) {
	store := identitytest.NewStore()
	store.PutUser("existing", identitytest.UserRow{Username: "Bob", Email: "Bob@Example.com", Role: domain.RoleCustomer, Active: true})
	interactor := NewInteractor(store.Users(), store.EventRepo(), store, clock.NewMockClock(time.Now()), bcrypt.MinCost)
	ctx := context.Background()

	resp, err := interactor.Execute(ctx, validRequest())
	require.NoError(t, err)

	row, ok := store.User(resp.UserID)
	require.True(t, ok)
	assert.Equal(t, domain.RoleCustomer, row.Role)
	assert.True(t, row.Active)
	assert.NotEqual(t, "Secret12", row.PasswordHash)
	require.Len(t, store.Events(), 1)

	t.Run("username is unique ignoring case", func(t *testing.T) {
		req := validRequest()
		req.Username = "BOB"
		req.Email = "other@example.com"
		_, err := interactor.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("email is unique ignoring case", func(t *testing.T) {
		req := validRequest()
		req.Username = "carla"
		req.Email = "bob@example.COM"
		_, err := interactor.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("validation", func(t *testing.T) {
		req := validRequest()
		req.PasswordConfirm = "Secret13"
		_, err := interactor.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

		req = validRequest()
		req.Password, req.PasswordConfirm = "secret12", "secret12"
		_, err = interactor.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrPasswordNoUppercase)

		req = validRequest()
		req.Email = ""
		_, err = interactor.Execute(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})

	assert.Equal(t, 2, store.UserCount())
}
