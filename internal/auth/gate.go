package auth

import (
	"sync"
	"time"

	"github.com/spec-kit/dominion-roster/internal/config"
	"github.com/spec-kit/dominion-roster/internal/domain"
)

// FailureMessage is the generic admin login failure text. It is deliberately
// uninformative about which half of the pair was wrong.
const FailureMessage = "驗證失敗：無效的授權碼"

// Gate resolves session roles. Visitor access is unconditional; admin access
// requires an exact match against the configured credential pair. The pair is
// plain configuration and must not be mistaken for a hardened access-control
// mechanism.
type Gate struct {
	username string
	secret   string
	window   time.Duration
	now      func() time.Time

	mu          sync.Mutex
	lastFailure time.Time
}

// NewGate builds the gate from auth configuration.
func NewGate(cfg config.AuthConfig) *Gate {
	return &Gate{
		username: cfg.AdminUsername,
		secret:   cfg.AdminSecret,
		window:   cfg.FailureWindow(),
		now:      time.Now,
	}
}

// GrantVisitor grants read-only access with no credential check.
func (g *Gate) GrantVisitor() domain.Role {
	return domain.RoleVisitor
}

// LoginAdmin grants RoleAdmin only on an exact credential match. A mismatch
// records a failure and grants no role.
func (g *Gate) LoginAdmin(username, secret string) domain.Role {
	if username == g.username && secret == g.secret {
		return domain.RoleAdmin
	}

	g.mu.Lock()
	g.lastFailure = g.now()
	g.mu.Unlock()
	return domain.RoleNone
}

// TransientError returns the failure message while the failure window is
// open, and the empty string once it has self-cleared.
func (g *Gate) TransientError() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastFailure.IsZero() || g.now().Sub(g.lastFailure) >= g.window {
		return ""
	}
	return FailureMessage
}
