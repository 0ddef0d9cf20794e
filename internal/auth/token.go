package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/directory-service/internal/config"
	"github.com/spec-kit/directory-service/internal/domain"
)

// Codec-level failures. These stay inside the auth package; callers past the
// trust boundary only ever see ErrInvalidToken.
var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)

// ErrInvalidToken is the single collapsed outcome for any validation
// failure. Callers are never told whether a token was expired, tampered
// with, or signed under the wrong key.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims describes the JWT payload shared by access and refresh tokens.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// tokenSigner encodes and decodes one token class under its own secret.
type tokenSigner struct {
	secret []byte
	ttl    time.Duration
	method jwt.SigningMethod
}

// Encode serializes claims with expiry now+ttl and signs them.
func (s tokenSigner) Encode(username string, role domain.Role) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Decode verifies the signature before interpreting any field, then checks
// expiry strictly (expiry <= now fails), then returns the claims.
func (s tokenSigner) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != s.method.Alg() {
			return nil, ErrTokenSignature
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.ExpiresAt == nil || !time.Now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// Denylist records revoked token IDs until their natural expiry.
type Denylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenManager issues and validates access/refresh token pairs. The two
// token classes use independent secrets, so a refresh token never validates
// under the access key and vice versa. Validation needs no storage beyond
// the optional denylist; everything else is embedded in the token.
type TokenManager struct {
	access   tokenSigner
	refresh  tokenSigner
	denylist Denylist
}

// NewTokenManager builds a manager from static auth configuration. The
// denylist is optional; pass nil to disable revocation checks.
func NewTokenManager(cfg config.AuthConfig, denylist Denylist) (*TokenManager, error) {
	method := jwt.GetSigningMethod(cfg.SigningAlgorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", cfg.SigningAlgorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("signing algorithm %q is not an HMAC method", cfg.SigningAlgorithm)
	}

	accessTTL := cfg.AccessTokenTTLMinutes
	if accessTTL <= 0 {
		accessTTL = 15
	}
	refreshTTL := cfg.RefreshTokenTTLMinutes
	if refreshTTL <= 0 {
		refreshTTL = 1440
	}

	return &TokenManager{
		access:   tokenSigner{secret: []byte(cfg.AccessSecret), ttl: time.Duration(accessTTL) * time.Minute, method: method},
		refresh:  tokenSigner{secret: []byte(cfg.RefreshSecret), ttl: time.Duration(refreshTTL) * time.Minute, method: method},
		denylist: denylist,
	}, nil
}

// IssueAccessToken signs a short-lived access token for the subject.
func (tm *TokenManager) IssueAccessToken(username string, role domain.Role) (string, time.Time, error) {
	token, claims, err := tm.access.Encode(username, role)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

// IssueRefreshToken signs a long-lived refresh token for the subject.
func (tm *TokenManager) IssueRefreshToken(username string, role domain.Role) (string, time.Time, error) {
	token, claims, err := tm.refresh.Encode(username, role)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, claims.ExpiresAt.Time, nil
}

// IssuePair issues both tokens for the subject.
func (tm *TokenManager) IssuePair(username string, role domain.Role) (*domain.TokenPair, error) {
	access, accessExp, err := tm.IssueAccessToken(username, role)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := tm.IssueRefreshToken(username, role)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// ValidateAccessToken decodes a token under the access key. Every codec
// failure, an unknown role claim, and a revoked token all collapse to
// ErrInvalidToken.
func (tm *TokenManager) ValidateAccessToken(ctx context.Context, tokenStr string) (*Claims, error) {
	return tm.validate(ctx, tm.access, tokenStr)
}

// Refresh decodes a token under the refresh key and, on success, issues a
// fresh access token carrying the same subject and role. The secret is not
// re-verified; trust extends from the refresh token's validity.
func (tm *TokenManager) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	claims, err := tm.validate(ctx, tm.refresh, refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}
	return tm.IssueAccessToken(claims.Username, domain.Role(claims.Role))
}

// RevokeToken denylists a presented token for its remaining lifetime. The
// token may belong to either class.
func (tm *TokenManager) RevokeToken(ctx context.Context, tokenStr string) error {
	if tm.denylist == nil {
		return nil
	}

	claims, err := tm.access.Decode(tokenStr)
	if err != nil {
		claims, err = tm.refresh.Decode(tokenStr)
	}
	if err != nil {
		return ErrInvalidToken
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}
	return tm.denylist.Revoke(ctx, claims.ID, remaining)
}

func (tm *TokenManager) validate(ctx context.Context, signer tokenSigner, tokenStr string) (*Claims, error) {
	claims, err := signer.Decode(tokenStr)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if _, err := domain.ParseRole(claims.Role); err != nil {
		return nil, ErrInvalidToken
	}
	if tm.denylist != nil {
		// revocation is best-effort: an unreachable denylist must not
		// reject otherwise valid, self-verifiable tokens
		if revoked, err := tm.denylist.IsRevoked(ctx, claims.ID); err == nil && revoked {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}
