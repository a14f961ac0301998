//go:build integration

package e2e

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/app/identity/usecases/login"
	"github.com/light-bringer/backoffice-service/tests/testutil"
)

func TestLoginLockoutPersists(t *testing.T) {
	ctx := context.Background()
	suite, cleanup := setupTest(t)
	defer cleanup()

	testutil.CreateTestUser(t, suite.Client, "ana", string(domain.RoleCustomer))

	for i := 0; i < 4; i++ {
		_, err := suite.Login.Execute(ctx, &login.Request{Username: "ana", Password: "wrong"})
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	_, err := suite.Login.Execute(ctx, &login.Request{Username: "ana", Password: "wrong"})
	var locked *domain.LockedError
	require.True(t, errors.As(err, &locked), "expected lockout, got %v", err)
	assert.Equal(t, int64(120), locked.Minutes())

	// The correct password is refused while locked.
	_, err = suite.Login.Execute(ctx, &login.Request{Username: "ana", Password: testutil.TestPassword})
	require.True(t, errors.As(err, &locked))

	suite.Clock.Advance(2*time.Hour + time.Second)

	resp, err := suite.Login.Execute(ctx, &login.Request{Username: "ana", Password: testutil.TestPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.RoleCustomer, resp.Role)
}
