package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/dominion-roster/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	for _, role := range []domain.Role{domain.RoleVisitor, domain.RoleAdmin} {
		token, expiresAt, err := tm.GenerateToken(role)
		require.NoError(t, err)
		assert.False(t, expiresAt.IsZero())

		claims, err := tm.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, role, claims.Role)
	}
}

func TestTokenRejectsUngrantableRole(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, _, err := tm.GenerateToken(domain.RoleNone)
	assert.Error(t, err)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken(domain.RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}
