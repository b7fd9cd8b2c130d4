package auth

import (
	"testing"
	"time"

	"bazaar/internal/apperr"
	"bazaar/internal/domain/accounts"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerify(t *testing.T) {
	a := NewJWTAuthenticator("test-secret", Issuer, TokenTTL)

	token, exp, err := a.Issue(12, accounts.RoleSeller)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), exp, time.Minute)

	claims, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.SubjectID)
	assert.Equal(t, accounts.RoleSeller, claims.Role)
}

func TestIssueUniqueTokenIDs(t *testing.T) {
	a := NewJWTAuthenticator("test-secret", Issuer, TokenTTL)

	t1, _, err := a.Issue(1, accounts.RoleShopkeeper)
	require.NoError(t, err)
	t2, _, err := a.Issue(1, accounts.RoleShopkeeper)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestVerifyExpired(t *testing.T) {
	a := NewJWTAuthenticator("test-secret", Issuer, TokenTTL)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return start }

	token, _, err := a.Issue(3, accounts.RoleSeller)
	require.NoError(t, err)

	a.now = func() time.Time { return start.Add(TokenTTL - time.Minute) }
	_, err = a.Verify(token)
	require.NoError(t, err)

	a.now = func() time.Time { return start.Add(TokenTTL + time.Minute) }
	_, err = a.Verify(token)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestVerifyRejects(t *testing.T) {
	a := NewJWTAuthenticator("test-secret", Issuer, TokenTTL)
	other := NewJWTAuthenticator("other-secret", Issuer, TokenTTL)

	forged, _, err := other.Issue(1, accounts.RoleSeller)
	require.NoError(t, err)

	unknownRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":         "",
		"garbage":       "not.a.token",
		"bad signature": forged,
		"unknown role":  unknownRole,
	} {
		_, err := a.Verify(token)
		assert.ErrorIs(t, err, apperr.ErrUnauthenticated, name)
	}
}

func TestMissingSecret(t *testing.T) {
	a := NewJWTAuthenticator("", Issuer, TokenTTL)

	_, _, err := a.Issue(1, accounts.RoleSeller)
	assert.ErrorIs(t, err, apperr.ErrMisconfigured)

	_, err = a.Verify("anything")
	assert.ErrorIs(t, err, apperr.ErrMisconfigured)
}
