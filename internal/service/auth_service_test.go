package service

import (
	"context"
	"sync"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/config"
	"github.com/spec-kit/directory-service/internal/domain"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by username
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	for _, existing := range r.users {
		if existing.Phone == user.Phone {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID != id {
			continue
		}
		if upd.Name != nil {
			user.Name = *upd.Name
		}
		if upd.Phone != nil {
			user.Phone = *upd.Phone
		}
		user.UpdatedAt = time.Now()
		copied := *user
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for username, user := range r.users {
		if user.ID == id {
			delete(r.users, username)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func testTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager(config.AuthConfig{
		AccessSecret:           "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenTTLMinutes:  15,
		RefreshTokenTTLMinutes: 1440,
		SigningAlgorithm:       "HS256",
	}, nil)
	require.NoError(t, err)
	return tm
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	svc := NewAuthService(AuthDependencies{
		UserRepo:   repo,
		Tokens:     testTokenManager(t),
		BcryptCost: bcrypt.MinCost,
	})
	return svc, repo
}

func registerInput(username, phone string) RegisterInput {
	return RegisterInput{
		Name:     "Alice Example",
		Username: username,
		Password: "password1",
		Phone:    phone,
	}
}

func TestRegisterIssuesTokenPairWithUserRole(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, pair, err := svc.Register(context.Background(), registerInput("alice@example.com", "5551234567"))
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, user.PasswordHash, "password1")

	claims, err := svc.TokenManager().ValidateAccessToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Username)
	assert.Equal(t, string(domain.RoleUser), claims.Role)
}

func TestRegisterDuplicateUsernameConflict(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _, err := svc.Register(context.Background(), registerInput("alice@example.com", "5551234567"))
	require.NoError(t, err)

	_, pair, err := svc.Register(context.Background(), registerInput("alice@example.com", "5559876543"))
	require.Error(t, err)
	assert.Nil(t, pair)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestRegisterDuplicatePhoneConflict(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _, err := svc.Register(context.Background(), registerInput("alice@example.com", "5551234567"))
	require.NoError(t, err)

	_, pair, err := svc.Register(context.Background(), registerInput("bob@example.com", "5551234567"))
	require.Error(t, err)
	assert.Nil(t, pair)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestLoginFailureIsUndistinguished(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _, err := svc.Register(context.Background(), registerInput("alice@example.com", "5551234567"))
	require.NoError(t, err)

	_, _, _, wrongPassErr := svc.Login(context.Background(), "alice@example.com", "wrong-pass")
	_, _, _, unknownUserErr := svc.Login(context.Background(), "nobody@example.com", "password1")

	require.Error(t, wrongPassErr)
	require.Error(t, unknownUserErr)

	// the caller must not learn whether the username existed
	assert.Equal(t, wrongPassErr.Error(), unknownUserErr.Error())
	assert.Equal(t, apperrors.ToDomainError(wrongPassErr).Code, apperrors.ToDomainError(unknownUserErr).Code)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(wrongPassErr).Code)
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _, err := svc.Register(context.Background(), registerInput("alice@example.com", "5551234567"))
	require.NoError(t, err)

	user, token, exp, err := svc.Login(context.Background(), "alice@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Username)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))
}

func TestRefreshWithExpiredTokenUnauthorized(t *testing.T) {
	svc, _ := newTestAuthService(t)

	expired := signedRefreshToken(t, "test-refresh-secret", -time.Minute)
	token, _, err := svc.Refresh(context.Background(), expired)
	require.Error(t, err)
	assert.Empty(t, token)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestRefreshWithAccessTokenUnauthorized(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, pair, err := svc.Register(context.Background(), registerInput("alice@example.com", "5551234567"))
	require.NoError(t, err)

	_, _, refreshErr := svc.Refresh(context.Background(), pair.AccessToken)
	require.Error(t, refreshErr)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(refreshErr).Code)
}

func TestRefreshValid(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, pair, err := svc.Register(context.Background(), registerInput("alice@example.com", "5551234567"))
	require.NoError(t, err)

	access, exp, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.True(t, exp.After(time.Now()))
}

// signedRefreshToken builds a refresh-class token directly so expiry can be
// forced into the past.
func signedRefreshToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := &auth.Claims{
		Username: "alice@example.com",
		Role:     string(domain.RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   "alice@example.com",
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
