package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/api/dto"
	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/service"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// AuthHandler exposes registration, login, refresh and token introspection.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError("invalid payload", details)
	}

	user, pair, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:         req.Name,
		Username:     req.Username,
		Password:     req.Password,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		JobPosition:  req.JobPosition,
		EmployeeType: req.EmployeeType,
		Company:      req.Company,
		WorkLocation: req.WorkLocation,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.NewTokenPairResponse(pair),
		},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := dto.Validate(req); details != nil {
		return apperrors.NewValidationError("invalid payload", details)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.TokenResponse{AccessToken: token, ExpiresAt: exp},
		},
	})
}

// Refresh handles POST /api/auth/refresh. The refresh token is presented as
// a bearer credential.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token, err := auth.BearerToken(c)
	if err != nil {
		return err
	}

	access, exp, err := h.auth.Refresh(c.Context(), token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.TokenResponse{AccessToken: access, ExpiresAt: exp},
	})
}

// ValidateToken handles POST /api/auth/validate_token. Introspection runs
// in-process against the token manager; there is no HTTP round-trip.
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	token, err := auth.BearerToken(c)
	if err != nil {
		return err
	}

	claims, err := h.auth.ValidateToken(c.Context(), token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Token validation successful",
		"data":    dto.TokenIntrospection{Username: claims.Username, Role: claims.Role},
	})
}

// Logout handles POST /api/auth/logout. Revokes the presented access token
// and, when supplied, the refresh token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	accessToken, err := auth.BearerToken(c)
	if err != nil {
		return err
	}

	var req dto.LogoutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	if err := h.auth.Logout(c.Context(), accessToken, req.RefreshToken); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}
