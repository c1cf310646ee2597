package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	pkgredis "github.com/ikkim/flyer-backend/pkg/redis"
	"github.com/ikkim/flyer-backend/pkg/util"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func setupAuthServiceTest(t *testing.T, revoker SessionRevoker) AuthService {
	hash, err := util.HashAdminKey("correct-admin-key")
	require.NoError(t, err)
	return NewAuthService(hash, testJWTSecret, time.Hour, revoker)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthServiceTest(t, nil)

	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{name: "Valid key", key: "correct-admin-key"},
		{name: "Wrong key", key: "wrong-key", wantErr: ErrInvalidAdminKey},
		{name: "Empty key", key: "", wantErr: ErrInvalidAdminKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(bg, tt.key)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, result.AccessToken)
			assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, time.Minute)

			claims, err := svc.ValidateToken(bg, result.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, util.AdminRole, claims.Role)
		})
	}
}

func TestAuthService_NotConfigured(t *testing.T) {
	svc := NewAuthService("", testJWTSecret, time.Hour, nil)
	_, err := svc.Login(bg, "anything")
	assert.ErrorIs(t, err, ErrAdminNotConfigured)
}

func TestAuthService_LogoutRevokesSession(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := setupAuthServiceTest(t, pkgredis.NewSessionRevoker(client, "flyer:"))

	result, err := svc.Login(bg, "correct-admin-key")
	require.NoError(t, err)
	claims, err := svc.ValidateToken(bg, result.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(bg, claims))

	_, err = svc.ValidateToken(bg, result.AccessToken)
	assert.ErrorIs(t, err, util.ErrInvalidToken)

	other, err := svc.Login(bg, "correct-admin-key")
	require.NoError(t, err)
	_, err = svc.ValidateToken(bg, other.AccessToken)
	assert.NoError(t, err)
}

func TestAuthService_LogoutWithoutRevoker(t *testing.T) {
	svc := setupAuthServiceTest(t, nil)
	result, err := svc.Login(bg, "correct-admin-key")
	require.NoError(t, err)
	claims, err := svc.ValidateToken(bg, result.AccessToken)
	require.NoError(t, err)

	assert.NoError(t, svc.Logout(bg, claims))
	_, err = svc.ValidateToken(bg, "garbage")
	assert.Error(t, err)
}
