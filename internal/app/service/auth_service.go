package service

import (
	"context"
	"time"

	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/ikkim/flyer-backend/pkg/util"
)

// SessionRevoker remembers logged-out admin sessions. pkg/redis provides one.
type SessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type AuthService interface {
	Login(ctx context.Context, adminKey string) (*LoginResult, error)
	Logout(ctx context.Context, claims *util.AdminClaims) error
	ValidateToken(ctx context.Context, token string) (*util.AdminClaims, error)
}

type authService struct {
	keyHash     string
	jwtSecret   string
	tokenExpiry time.Duration
	revoker     SessionRevoker
}

// NewAuthService builds the admin auth service. revoker may be nil, in which
// case logout only discards the token client side.
func NewAuthService(keyHash, jwtSecret string, tokenExpiry time.Duration, revoker SessionRevoker) AuthService {
	return &authService{
		keyHash:     keyHash,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
		revoker:     revoker,
	}
}

func (s *authService) Login(ctx context.Context, adminKey string) (*LoginResult, error) {
	if s.keyHash == "" {
		logger.Warn("Admin login attempted without ADMIN_KEY_HASH configured")
		return nil, ErrAdminNotConfigured
	}
	if !util.VerifyAdminKey(s.keyHash, adminKey) {
		logger.Warn("Admin login failed: invalid key")
		return nil, ErrInvalidAdminKey
	}

	token, claims, err := util.GenerateAdminToken(s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate admin token", err)
		return nil, err
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"session_id": claims.SessionID,
	})
	return &LoginResult{AccessToken: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *authService) Logout(ctx context.Context, claims *util.AdminClaims) error {
	if s.revoker == nil || claims == nil {
		return nil
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.revoker.Revoke(ctx, claims.SessionID, ttl)
}

// ValidateToken checks the signature and expiry and rejects revoked sessions.
func (s *authService) ValidateToken(ctx context.Context, token string) (*util.AdminClaims, error) {
	claims, err := util.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.SessionID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, util.ErrInvalidToken
		}
	}
	return claims, nil
}
