package user

import (
	"strings"
	"testing"

	"github.com/dinero-app/dinero/pkg/domain"
	"github.com/dinero-app/dinero/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	u, err := New("  Alice@Example.COM ", "pw123456", " Alice ", "")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, DefaultCurrency, u.Currency)
	assert.NotEqual(t, "pw123456", u.Password)
	assert.True(t, utils.CheckPasswordHash("pw123456", u.Password))
	assert.False(t, u.CreatedAt.IsZero())
	assert.Equal(t, u.CreatedAt, u.UpdatedAt)
}

func TestNew_Invalid(t *testing.T) {
	testCases := []struct {
		desc     string
		email    string
		password string
		currency string
		wantErr  error
	}{
		{desc: "bad email", email: "not-an-email", password: "pw123456", wantErr: ErrInvalidEmail},
		{desc: "empty password", email: "a@b.com", password: "", wantErr: ErrEmptyPassword},
		{desc: "bad currency", email: "a@b.com", password: "pw123456", currency: "DOLLARS", wantErr: ErrInvalidCurrency},
		{desc: "password over 72 bytes", email: "a@b.com", password: strings.Repeat("é", 40), wantErr: ErrPasswordTooLong},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			u, err := New(tc.email, tc.password, "", tc.currency)
			require.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Nil(t, u)
		})
	}
}

func TestNew_PasswordAtByteLimit(t *testing.T) {
	password := strings.Repeat("é", MaxPasswordBytes/2)
	u, err := New("a@b.com", password, "", "")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash(password, u.Password))
}

func TestNew_SaltedHashes(t *testing.T) {
	a, err := New("a@b.com", "same-password", "", "")
	require.NoError(t, err)
	b, err := New("c@d.com", "same-password", "", "")
	require.NoError(t, err)
	assert.NotEqual(t, a.Password, b.Password)
}

func TestNormalizeCurrency(t *testing.T) {
	code, err := NormalizeCurrency("usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", code)

	_, err = NormalizeCurrency("U5D")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}
