package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/internal/app/service"
)

// NotificationController serves admin notifications and dashboard counters.
type NotificationController struct {
	notificationService service.NotificationService
	dashboardService    service.DashboardService
}

func NewNotificationController(notificationService service.NotificationService, dashboardService service.DashboardService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		dashboardService:    dashboardService,
	}
}

// List GET /api/v1/admin/notifications?unread=true
func (ctrl *NotificationController) List(c *gin.Context) {
	notifications, err := ctrl.notificationService.ListForAdmin(c.Request.Context(), c.Query("unread") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	unread, err := ctrl.notificationService.UnreadCountForAdmin(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// MarkAsRead POST /api/v1/admin/notifications/:id/read
func (ctrl *NotificationController) MarkAsRead(c *gin.Context) {
	if err := ctrl.notificationService.MarkAsRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "읽음 처리되었습니다"})
}

// MarkAllAsRead POST /api/v1/admin/notifications/read-all
func (ctrl *NotificationController) MarkAllAsRead(c *gin.Context) {
	marked, err := ctrl.notificationService.MarkAllAsReadForAdmin(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": marked})
}

// Badges GET /api/v1/admin/badges
func (ctrl *NotificationController) Badges(c *gin.Context) {
	badges, err := ctrl.dashboardService.Badges(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, badges)
}

// ViewTotals GET /api/v1/admin/views
func (ctrl *NotificationController) ViewTotals(c *gin.Context) {
	totals, err := ctrl.dashboardService.ViewTotals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": totals})
}
