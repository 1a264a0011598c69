package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dominion-roster/internal/api/dto"
	"github.com/spec-kit/dominion-roster/internal/auth"
	"github.com/spec-kit/dominion-roster/internal/domain"
	apperrors "github.com/spec-kit/dominion-roster/pkg/util/errorutil"
)

// SessionHandler manages the session gate endpoints.
type SessionHandler struct {
	gate   *auth.Gate
	tokens *auth.TokenManager
}

// NewSessionHandler constructs handler.
func NewSessionHandler(gate *auth.Gate, tokens *auth.TokenManager) *SessionHandler {
	return &SessionHandler{gate: gate, tokens: tokens}
}

// VisitorLogin POST /auth/visitor. Read-only access, no credential check.
func (h *SessionHandler) VisitorLogin(c *fiber.Ctx) error {
	return h.issueSession(c, h.gate.GrantVisitor())
}

// AdminLogin POST /auth/admin/login.
func (h *SessionHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	role := h.gate.LoginAdmin(req.Username, req.Secret)
	if role != domain.RoleAdmin {
		return apperrors.NewUnauthorized(auth.FailureMessage)
	}
	return h.issueSession(c, role)
}

// State GET /auth/state. The failure message self-clears after the window.
func (h *SessionHandler) State(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.GateStateResponse{Error: h.gate.TransientError()}})
}

// Logout POST /auth/logout. Stateless tokens make this a no-op server-side.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

func (h *SessionHandler) issueSession(c *fiber.Ctx, role domain.Role) error {
	token, expiresAt, err := h.tokens.GenerateToken(role)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		Role:      string(role),
		Token:     token,
		ExpiresAt: expiresAt,
	}})
}
