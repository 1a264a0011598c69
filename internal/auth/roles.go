package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dominion-roster/internal/domain"
	apperrors "github.com/spec-kit/dominion-roster/pkg/util/errorutil"
)

// RequireAnyRole ensures the caller holds a session (visitor or admin).
func RequireAnyRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("session required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("session required")
		}
		if principal.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
