package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/backoffice-service/internal/pkg/clock"
)

const secret = "test-secret-test-secret-test-secret"

func TestManager_IssueAndVerify(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	m := NewManager(secret, 10*time.Minute, clk)

	token, expiresAt, err := m.Issue(Principal{UserID: "u-1", Username: "ana", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, clk.Now().Add(10*time.Minute), expiresAt)

	p, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, &Principal{UserID: "u-1", Username: "ana", Role: "admin"}, p)
}

func TestManager_VerifyExpired(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	m := NewManager(secret, 10*time.Minute, clk)

	token, _, err := m.Issue(Principal{UserID: "u-1", Username: "ana", Role: "customer"})
	require.NoError(t, err)

	clk.Advance(11 * time.Minute)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_VerifyRejectsForeignSignature(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	issuer := NewManager("another-secret-another-secret-1234", time.Hour, clk)
	verifier := NewManager(secret, time.Hour, clk)

	token, _, err := issuer.Issue(Principal{UserID: "u-1", Role: "admin"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_VerifyRejectsNoneAlgorithm(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	m := NewManager(secret, time.Hour, clk)

	claims := Claims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(clk.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), &Principal{UserID: "u-1"})
	p, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-1", p.UserID)
}
