package util

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateAdminToken(t *testing.T) {
	token, claims, err := GenerateAdminToken(testSecret, 15*time.Minute)
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, claims.SessionID)
	assert.Equal(t, AdminRole, claims.Role)
	assert.True(t, claims.IssuedAt.Before(claims.ExpiresAt.Time))

	other, otherClaims, err := GenerateAdminToken(testSecret, 15*time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
	assert.NotEqual(t, claims.SessionID, otherClaims.SessionID)
}

func TestValidateToken(t *testing.T) {
	token, issued, err := GenerateAdminToken(testSecret, 15*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{name: "Valid token", token: token, secret: testSecret},
		{name: "Invalid secret", token: token, secret: "wrong-secret", wantErr: ErrInvalidToken},
		{name: "Invalid token format", token: "invalid.token.format", secret: testSecret, wantErr: ErrInvalidToken},
		{name: "Empty token", token: "", secret: testSecret, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, issued.SessionID, claims.SessionID)
			assert.Equal(t, AdminRole, claims.Role)
		})
	}
}

func TestExpiredToken(t *testing.T) {
	token, _, err := GenerateAdminToken(testSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestValidateToken_RejectsNonAdminRole(t *testing.T) {
	claims := &AdminClaims{
		SessionID: "s1",
		Role:      "vendor",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
