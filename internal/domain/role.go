package domain

import "fmt"

// Role enumerates the fixed set of caller roles embedded in tokens.
type Role string

const (
	RoleSuperAdmin        Role = "super_admin"
	RoleDepartmentMaker   Role = "department_maker"
	RoleDepartmentAdmin   Role = "department_admin"
	RoleDepartmentChecker Role = "department_checker"
	RoleSuperChecker      Role = "super_checker"
	RoleUser              Role = "user"
)

// AllRoles returns every known role. Used as the allow-set for operations
// open to any authenticated caller.
func AllRoles() []Role {
	return []Role{
		RoleSuperAdmin,
		RoleDepartmentMaker,
		RoleDepartmentAdmin,
		RoleDepartmentChecker,
		RoleSuperChecker,
		RoleUser,
	}
}

// ParseRole validates a raw role string. Unknown values are rejected rather
// than treated as a new role.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleSuperAdmin, RoleDepartmentMaker, RoleDepartmentAdmin,
		RoleDepartmentChecker, RoleSuperChecker, RoleUser:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}
