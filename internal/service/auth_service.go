package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/events"
	"github.com/spec-kit/directory-service/internal/repository"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// AuthService coordinates registration, login, refresh and logout flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
	BcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
	}
}

// RegisterInput describes a new account.
type RegisterInput struct {
	Name         string
	Username     string
	Password     string
	Phone        string
	DepartmentID *string
	JobPosition  string
	EmployeeType string
	Company      string
	WorkLocation string
}

// Register creates a new account with the default "user" role and issues a
// token pair. Username and phone must both be unique; the unique indexes in
// the store back the checks under concurrent registrations.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.TokenPair, error) {
	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, nil, apperrors.NewConflict("username already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, nil, err
	}

	taken, err := s.users.ExistsByPhone(ctx, input.Phone)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, apperrors.NewConflict("phone number already registered", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Username:     input.Username,
		PasswordHash: hash,
		Phone:        input.Phone,
		Role:         domain.RoleUser,
		DepartmentID: input.DepartmentID,
		JobPosition:  input.JobPosition,
		EmployeeType: input.EmployeeType,
		Company:      input.Company,
		WorkLocation: input.WorkLocation,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, nil, apperrors.NewConflict("username or phone already registered", nil)
		}
		return nil, nil, err
	}

	pair, err := s.tokens.IssuePair(user.Username, user.Role)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventUserRegistered, events.Actor{Username: user.Username, Role: user.Role},
		events.UserRegisteredPayload{UserID: user.ID, Username: user.Username})

	return user, pair, nil
}

// Login verifies credentials and issues an access token. A missing account
// and a wrong password produce the same undistinguished failure.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect username or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect username or password")
	}

	token, exp, err := s.tokens.IssueAccessToken(user.Username, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	token, exp, err := s.tokens.Refresh(ctx, refreshToken)
	if err != nil {
		if err == auth.ErrInvalidToken {
			return "", time.Time{}, apperrors.NewUnauthorized("invalid or expired refresh token")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// ValidateToken introspects an access token, returning its claims.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.ValidateAccessToken(ctx, token)
	if err != nil {
		if err == auth.ErrInvalidToken {
			return nil, apperrors.NewUnauthorized("invalid or expired token")
		}
		return nil, err
	}
	return claims, nil
}

// Logout revokes the presented tokens for their remaining lifetime. Without
// a denylist configured this is a no-op; stateless tokens then expire
// naturally.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken != "" {
		if err := s.tokens.RevokeToken(ctx, accessToken); err != nil && err != auth.ErrInvalidToken {
			return err
		}
	}
	if refreshToken != "" {
		if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil && err != auth.ErrInvalidToken {
			return err
		}
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
