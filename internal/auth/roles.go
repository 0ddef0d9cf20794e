package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// Permit reports whether role is literally a member of the allow-set. There
// is no role hierarchy; super_admin is not implicitly in {user}.
func Permit(role domain.Role, allowSet []domain.Role) bool {
	for _, allowed := range allowSet {
		if role == allowed {
			return true
		}
	}
	return false
}

// RequireRole ensures the authenticated principal holds one of the allowed
// roles. An empty allow-set denies every caller: operations must declare
// their roles explicitly, there is no default-permit.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowSet := make([]domain.Role, len(allowed))
	copy(allowSet, allowed)

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !Permit(principal.Role, allowSet) {
			return apperrors.NewForbidden("insufficient privileges")
		}
		return c.Next()
	}
}
