package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

func newGateApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			}})
		},
	})

	gate := NewAuthMiddleware(tm, []string{"/public"})
	app.Use(gate.Handle)

	app.Get("/public", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/protected", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"username": principal.Username, "role": string(principal.Role)})
	})
	app.Delete("/admin", RequireRole(domain.RoleDepartmentAdmin, domain.RoleSuperAdmin), func(c *fiber.Ctx) error {
		return c.SendString("deleted")
	})
	app.Get("/undeclared", RequireRole(), func(c *fiber.Ctx) error {
		return c.SendString("unreachable")
	})

	return app
}

func TestGatePublicPathExempt(t *testing.T) {
	app := newGateApp(t, newTestManager(t, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGatePublicPathTrailingSlash(t *testing.T) {
	app := newGateApp(t, newTestManager(t, nil))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/public/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateMissingCredential(t *testing.T) {
	app := newGateApp(t, newTestManager(t, nil))

	for _, header := range []string{"", "Bearer", "Bearer ", "Token abc", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestGateValidToken(t *testing.T) {
	tm := newTestManager(t, nil)
	app := newGateApp(t, tm)

	token, _, err := tm.IssueAccessToken("alice@example.com", domain.RoleDepartmentAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateRejectsRefreshTokenForAccess(t *testing.T) {
	tm := newTestManager(t, nil)
	app := newGateApp(t, tm)

	refresh, _, err := tm.IssueRefreshToken("alice@example.com", domain.RoleDepartmentAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleForbidden(t *testing.T) {
	tm := newTestManager(t, nil)
	app := newGateApp(t, tm)

	token, _, err := tm.IssueAccessToken("bob@example.com", domain.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRolePermitted(t *testing.T) {
	tm := newTestManager(t, nil)
	app := newGateApp(t, tm)

	token, _, err := tm.IssueAccessToken("carol@example.com", domain.RoleSuperAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleEmptyAllowSetDenies(t *testing.T) {
	tm := newTestManager(t, nil)
	app := newGateApp(t, tm)

	token, _, err := tm.IssueAccessToken("carol@example.com", domain.RoleSuperAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/undeclared", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
