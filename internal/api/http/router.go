package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/api/http/handlers"
	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/domain"
)

// Route paths. The public subset below is derived from these same constants
// so the gate's exemption list can never drift from the route table.
const (
	pathHealthLive  = "/health/live"
	pathHealthReady = "/health/ready"

	pathRegister      = "/api/auth/register"
	pathLogin         = "/api/auth/login"
	pathRefresh       = "/api/auth/refresh"
	pathValidateToken = "/api/auth/validate_token"
	pathLogout        = "/api/auth/logout"

	pathUsers       = "/api/users"
	pathDepartments = "/api/departments"
)

// PublicPaths returns the routes exempt from the authentication gate. Pass
// this to auth.NewAuthMiddleware; it is the only source of exemptions.
func PublicPaths() []string {
	return []string{
		pathHealthLive,
		pathHealthReady,
		pathRegister,
		pathLogin,
		pathRefresh,
	}
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Departments    *handlers.DepartmentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The gate runs on every request and
// skips only PublicPaths; each protected operation then declares its
// allow-set explicitly. An operation without one would deny everybody.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthMiddleware.Handle)

	app.Get(pathHealthLive, cfg.Health.Live)
	app.Get(pathHealthReady, cfg.Health.Ready)

	app.Post(pathRegister, cfg.Auth.Register)
	app.Post(pathLogin, cfg.Auth.Login)
	app.Post(pathRefresh, cfg.Auth.Refresh)
	app.Post(pathValidateToken, auth.RequireRole(domain.AllRoles()...), cfg.Auth.ValidateToken)
	app.Post(pathLogout, auth.RequireRole(domain.AllRoles()...), cfg.Auth.Logout)

	users := app.Group(pathUsers)
	users.Get("/", auth.RequireRole(domain.RoleSuperAdmin, domain.RoleSuperChecker), cfg.Users.List)
	users.Get("/:id", auth.RequireRole(domain.RoleSuperAdmin, domain.RoleSuperChecker), cfg.Users.Get)
	users.Put("/:id", auth.RequireRole(domain.RoleSuperAdmin, domain.RoleDepartmentAdmin), cfg.Users.Update)
	users.Delete("/:id", auth.RequireRole(domain.RoleSuperAdmin), cfg.Users.Delete)

	departments := app.Group(pathDepartments)
	departments.Get("/", auth.RequireRole(domain.AllRoles()...), cfg.Departments.List)
	departments.Get("/:id", auth.RequireRole(domain.AllRoles()...), cfg.Departments.Get)
	departments.Post("/", auth.RequireRole(domain.RoleDepartmentMaker, domain.RoleSuperAdmin), cfg.Departments.Create)
	departments.Put("/:id", auth.RequireRole(domain.RoleDepartmentMaker, domain.RoleDepartmentAdmin, domain.RoleSuperAdmin), cfg.Departments.Update)
	departments.Delete("/:id", auth.RequireRole(domain.RoleDepartmentAdmin, domain.RoleSuperAdmin), cfg.Departments.Delete)
}
