package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/directory-service/internal/domain"
)

func TestPermitLiteralMembership(t *testing.T) {
	tests := []struct {
		name     string
		role     domain.Role
		allowSet []domain.Role
		want     bool
	}{
		{"member", domain.RoleDepartmentAdmin, []domain.Role{domain.RoleDepartmentAdmin, domain.RoleSuperAdmin}, true},
		{"not member", domain.RoleUser, []domain.Role{domain.RoleDepartmentAdmin, domain.RoleSuperAdmin}, false},
		{"no implicit hierarchy", domain.RoleSuperAdmin, []domain.Role{domain.RoleUser}, false},
		{"empty set denies", domain.RoleSuperAdmin, nil, false},
		{"full set", domain.RoleSuperChecker, domain.AllRoles(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Permit(tt.role, tt.allowSet))
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, role := range domain.AllRoles() {
		parsed, err := domain.ParseRole(string(role))
		assert.NoError(t, err)
		assert.Equal(t, role, parsed)
	}

	_, err := domain.ParseRole("overlord")
	assert.Error(t, err)
	_, err = domain.ParseRole("")
	assert.Error(t, err)
}
