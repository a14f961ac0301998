package create_user

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

func TestCreateUser(t *testing.T) {
	store := identitytest.NewStore()
	interactor := NewInteractor(store.Users(), store.EventRepo(), store, clock.NewMockClock(time.Now()), bcrypt.MinCost)
	ctx := context.Background()

	resp, err := interactor.Execute(ctx, &Request{Username: "clerk", Password: "Stock123", Role: "warehouse"})
	require.NoError(t, err)

	row, ok := store.User(resp.UserID)
	require.True(t, ok)
	assert.Equal(t, domain.RoleWarehouse, row.Role)
	assert.Empty(t, row.Email)

	_, err = interactor.Execute(ctx, &Request{Username: "clerk", Password: "Stock123", Role: "customer"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = interactor.Execute(ctx, &Request{Username: "boss", Password: "Stock123", Role: "owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}
