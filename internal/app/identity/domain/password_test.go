package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		want     error
	}{
		{"Secret12", nil},
		{"Ñandú2024", nil},
		{"Sh0rt", ErrPasswordTooShort},
		{"lowercase1", ErrPasswordNoUppercase},
		{"NoDigitsHere", ErrPasswordNoDigit},
	}
	for _, tc := range cases {
		t.Run(tc.password, func(t *testing.T) {
			err := ValidatePasswordStrength(tc.password)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Secret12", bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := PasswordMatches(hash, "Secret12")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = PasswordMatches(hash, "secret12")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = PasswordMatches("not-a-hash", "Secret12")
	assert.Error(t, err)
}
