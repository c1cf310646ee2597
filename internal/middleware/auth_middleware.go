package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/internal/app/service"
	"github.com/ikkim/flyer-backend/internal/errors"
	"github.com/ikkim/flyer-backend/pkg/util"
)

// AdminClaimsKey holds the authenticated *util.AdminClaims.
const AdminClaimsKey = "admin_claims"

type AuthMiddleware struct {
	authService service.AuthService
}

func NewAuthMiddleware(authService service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// AdminAuth requires a valid, unrevoked admin bearer token.
func (m *AuthMiddleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "관리자 로그인이 필요합니다")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "인증 형식이 올바르지 않습니다")
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			// 토큰 만료 에러인 경우 명확히 표시
			switch err {
			case util.ErrExpiredToken:
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "로그인이 만료되었습니다")
			case util.ErrInvalidToken:
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "유효하지 않은 인증 토큰입니다")
			default:
				errors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(AdminClaimsKey, claims)

		log.Debug("Admin authenticated", map[string]interface{}{
			"session_id": claims.SessionID,
		})

		c.Next()
	}
}

// GetAdminClaims extracts the admin session from context
func GetAdminClaims(c *gin.Context) (*util.AdminClaims, bool) {
	v, exists := c.Get(AdminClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*util.AdminClaims)
	return claims, ok
}
