package dto

import (
	"time"

	"github.com/spec-kit/directory-service/internal/domain"
)

// RegisterRequest payload for new accounts. Username is the login email.
type RegisterRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Username     string  `json:"username" validate:"required,email"`
	Password     string  `json:"password" validate:"required,password"`
	Phone        string  `json:"phone" validate:"required,len=10,numeric"`
	DepartmentID *string `json:"department_id,omitempty" validate:"omitempty,uuid"`
	JobPosition  string  `json:"job_position,omitempty"`
	EmployeeType string  `json:"employee_type,omitempty"`
	Company      string  `json:"company,omitempty"`
	WorkLocation string  `json:"work_location,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LogoutRequest optionally carries the refresh token so both credentials can
// be revoked; the access token comes from the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// TokenResponse carries a single issued access token.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenPairResponse carries both tokens issued at registration.
type TokenPairResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// NewTokenPairResponse maps a domain token pair.
func NewTokenPairResponse(pair *domain.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}

// TokenIntrospection is returned by the validate_token endpoint.
type TokenIntrospection struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
