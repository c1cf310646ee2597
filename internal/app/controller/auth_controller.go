package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/internal/app/service"
	"github.com/ikkim/flyer-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type LoginRequest struct {
	AdminKey string `json:"adminKey" binding:"required"`
}

// Login exchanges the admin key for a session token
// POST /api/v1/admin/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := ctrl.authService.Login(c.Request.Context(), req.AdminKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout revokes the current admin session
// POST /api/v1/admin/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	claims, _ := middleware.GetAdminClaims(c)
	if err := ctrl.authService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "로그아웃되었습니다"})
}
