package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller resolved from a token.
type Principal struct {
	Username string
	Role     domain.Role
}

// AuthMiddleware validates bearer tokens on every request whose path is not
// in the public set. The public set must come from the route table itself so
// exemptions cannot drift from the registered routes.
type AuthMiddleware struct {
	tokens *TokenManager
	public map[string]struct{}
}

// NewAuthMiddleware constructs the gate.
func NewAuthMiddleware(tokens *TokenManager, publicPaths []string) *AuthMiddleware {
	public := make(map[string]struct{}, len(publicPaths))
	for _, path := range publicPaths {
		public[path] = struct{}{}
	}
	return &AuthMiddleware{tokens: tokens, public: public}
}

// BearerToken extracts the credential from the Authorization header. Any
// shape other than "Bearer <token>" is a missing credential.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return parts[1], nil
}

// Handle enforces authentication for protected routes. Paths are compared
// with any trailing slash stripped; non-strict routing serves both variants,
// so the exemption check must too.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	path := c.Path()
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if _, ok := m.public[path]; ok {
		return c.Next()
	}

	token, err := BearerToken(c)
	if err != nil {
		return err
	}

	claims, err := m.tokens.ValidateAccessToken(c.Context(), token)
	if err != nil {
		if err == ErrInvalidToken {
			return apperrors.NewUnauthorized("invalid or expired token")
		}
		return apperrors.MapError(err)
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	c.Locals(principalKey, &Principal{Username: claims.Username, Role: role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
