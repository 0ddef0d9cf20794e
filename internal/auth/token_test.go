package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/directory-service/internal/config"
	"github.com/spec-kit/directory-service/internal/domain"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessSecret:           "test-access-secret",
		RefreshSecret:          "test-refresh-secret",
		AccessTokenTTLMinutes:  15,
		RefreshTokenTTLMinutes: 1440,
		SigningAlgorithm:       "HS256",
	}
}

func newTestManager(t *testing.T, denylist Denylist) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testAuthConfig(), denylist)
	require.NoError(t, err)
	return tm
}

type fakeDenylist struct {
	mu      sync.Mutex
	revoked map[string]struct{}
}

func newFakeDenylist() *fakeDenylist {
	return &fakeDenylist{revoked: make(map[string]struct{})}
}

func (d *fakeDenylist) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = struct{}{}
	return nil
}

func (d *fakeDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := newTestManager(t, nil)

	token, exp, err := tm.IssueAccessToken("alice@example.com", domain.RoleDepartmentMaker)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := tm.ValidateAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Username)
	assert.Equal(t, string(domain.RoleDepartmentMaker), claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := newTestManager(t, nil)
	tm.access.ttl = -time.Minute

	token, _, err := tm.IssueAccessToken("alice@example.com", domain.RoleUser)
	require.NoError(t, err)

	_, err = tm.access.Decode(token)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = tm.ValidateAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestKeyClassIsolation(t *testing.T) {
	tm := newTestManager(t, nil)

	access, _, err := tm.IssueAccessToken("alice@example.com", domain.RoleUser)
	require.NoError(t, err)
	refresh, _, err := tm.IssueRefreshToken("alice@example.com", domain.RoleUser)
	require.NoError(t, err)

	// an access token never passes under the refresh key and vice versa
	_, _, err = tm.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.ValidateAccessToken(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedTokenRejected(t *testing.T) {
	tm := newTestManager(t, nil)

	token, _, err := tm.IssueAccessToken("alice@example.com", domain.RoleUser)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("x", len(parts[2]))

	_, err = tm.ValidateAccessToken(context.Background(), tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.ValidateAccessToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUnknownRoleRejected(t *testing.T) {
	tm := newTestManager(t, nil)

	token, _, err := tm.access.Encode("alice@example.com", domain.Role("overlord"))
	require.NoError(t, err)

	_, err = tm.ValidateAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshIssuesFreshAccessToken(t *testing.T) {
	tm := newTestManager(t, nil)

	refresh, _, err := tm.IssueRefreshToken("alice@example.com", domain.RoleSuperChecker)
	require.NoError(t, err)

	access, exp, err := tm.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := tm.ValidateAccessToken(context.Background(), access)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Username)
	assert.Equal(t, string(domain.RoleSuperChecker), claims.Role)
}

func TestIssuePair(t *testing.T) {
	tm := newTestManager(t, nil)

	pair, err := tm.IssuePair("bob@example.com", domain.RoleUser)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))
}

func TestRevokedTokenRejected(t *testing.T) {
	denylist := newFakeDenylist()
	tm := newTestManager(t, denylist)

	token, _, err := tm.IssueAccessToken("alice@example.com", domain.RoleUser)
	require.NoError(t, err)

	_, err = tm.ValidateAccessToken(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, tm.RevokeToken(context.Background(), token))
	_, err = tm.ValidateAccessToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// downDenylist simulates a Redis outage.
type downDenylist struct{}

func (downDenylist) Revoke(context.Context, string, time.Duration) error {
	return errors.New("connection refused")
}

func (downDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func TestUnreachableDenylistDoesNotRejectValidTokens(t *testing.T) {
	tm := newTestManager(t, downDenylist{})

	token, _, err := tm.IssueAccessToken("alice@example.com", domain.RoleUser)
	require.NoError(t, err)

	claims, err := tm.ValidateAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Username)

	_, _, err = tm.Refresh(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerRejectsNonHMAC(t *testing.T) {
	cfg := testAuthConfig()
	cfg.SigningAlgorithm = "RS256"
	_, err := NewTokenManager(cfg, nil)
	assert.Error(t, err)

	cfg.SigningAlgorithm = "bogus"
	_, err = NewTokenManager(cfg, nil)
	assert.Error(t, err)
}
