package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/dominion-roster/internal/config"
	"github.com/spec-kit/dominion-roster/internal/domain"
)

func testGate() (*Gate, *time.Time) {
	gate := NewGate(config.AuthConfig{
		AdminUsername:        "Q",
		AdminSecret:          "0919",
		FailureWindowSeconds: 3,
	})
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	gate.now = func() time.Time { return now }
	return gate, &now
}

func TestGateVisitor(t *testing.T) {
	gate, _ := testGate()
	assert.Equal(t, domain.RoleVisitor, gate.GrantVisitor())
	assert.Empty(t, gate.TransientError())
}

func TestGateAdminLogin(t *testing.T) {
	t.Run("exact pair grants admin", func(t *testing.T) {
		gate, _ := testGate()
		assert.Equal(t, domain.RoleAdmin, gate.LoginAdmin("Q", "0919"))
		assert.Empty(t, gate.TransientError())
	})

	t.Run("any other pair grants no role", func(t *testing.T) {
		gate, _ := testGate()
		assert.Equal(t, domain.RoleNone, gate.LoginAdmin("Q", "wrong"))
		assert.Equal(t, domain.RoleNone, gate.LoginAdmin("admin", "0919"))
		assert.Equal(t, domain.RoleNone, gate.LoginAdmin("", ""))
	})

	t.Run("failure message self-clears after the window", func(t *testing.T) {
		gate, now := testGate()
		gate.LoginAdmin("Q", "wrong")
		assert.Equal(t, FailureMessage, gate.TransientError())

		*now = now.Add(2 * time.Second)
		assert.Equal(t, FailureMessage, gate.TransientError())

		*now = now.Add(time.Second)
		assert.Empty(t, gate.TransientError())
	})
}

func TestRoleSemantics(t *testing.T) {
	assert.True(t, domain.RoleAdmin.CanEdit())
	assert.False(t, domain.RoleVisitor.CanEdit())
	assert.False(t, domain.RoleNone.CanEdit())
	assert.False(t, domain.RoleNone.Valid())
}
