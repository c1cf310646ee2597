package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/config"
	"github.com/ikkim/flyer-backend/internal/app/controller"
	"github.com/ikkim/flyer-backend/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	BackendName() string
	Ping(ctx context.Context) error
}

type Controllers struct {
	Auth         *controller.AuthController
	Request      *controller.RequestController
	Flyer        *controller.FlyerController
	Manager      *controller.ManagerController
	Vendor       *controller.VendorController
	Ticket       *controller.TicketController
	Notification *controller.NotificationController
	Upload       *controller.UploadController
}

type Router struct {
	controllers    Controllers
	authMiddleware *middleware.AuthMiddleware
	health         HealthChecker
	gatherer       prometheus.Gatherer
	config         *config.Config
}

func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	health HealthChecker,
	gatherer prometheus.Gatherer,
	cfg *config.Config,
) *Router {
	return &Router{
		controllers:    controllers,
		authMiddleware: authMiddleware,
		health:         health,
		gatherer:       gatherer,
		config:         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", r.healthCheck)
	if r.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	ctl := r.controllers
	v1 := router.Group("/api/v1")
	{
		v1.POST("/requests", ctl.Request.Submit)
		v1.GET("/flyers/:slug", ctl.Flyer.GetPublicFlyer)

		manage := v1.Group("/manage/:token")
		{
			manage.GET("", ctl.Manager.Get)
			manage.PUT("", ctl.Manager.Save)
			manage.POST("/uploads", ctl.Upload.Upload)
			manage.POST("/uploads/presign", ctl.Upload.Presign)
			manage.GET("/tickets", ctl.Manager.ListTickets)
			manage.POST("/tickets", ctl.Manager.OpenTicket)
			manage.GET("/tickets/:id/messages", ctl.Manager.TicketMessages)
			manage.POST("/tickets/:id/messages", ctl.Manager.Reply)
			manage.GET("/notifications", ctl.Manager.Notifications)
		}

		v1.POST("/admin/login", ctl.Auth.Login)

		admin := v1.Group("/admin", r.authMiddleware.AdminAuth())
		{
			admin.POST("/logout", ctl.Auth.Logout)

			admin.GET("/requests", ctl.Request.List)
			admin.POST("/requests/:id/approve", ctl.Request.Approve)
			admin.POST("/requests/:id/reject", ctl.Request.Reject)

			admin.GET("/vendors", ctl.Vendor.List)
			admin.GET("/vendors/:id", ctl.Vendor.Get)
			admin.PUT("/vendors/:id", ctl.Vendor.Update)
			admin.DELETE("/vendors/:id", ctl.Vendor.Delete)
			admin.PUT("/vendors/:id/status", ctl.Vendor.UpdateStatus)
			admin.POST("/vendors/:id/edit-token", ctl.Vendor.RegenerateEditToken)
			admin.GET("/vendors/:id/stats", ctl.Flyer.ViewStats)

			admin.GET("/tickets", ctl.Ticket.List)
			admin.GET("/tickets/:id/messages", ctl.Ticket.Messages)
			admin.POST("/tickets/:id/messages", ctl.Ticket.Reply)
			admin.POST("/tickets/:id/close", ctl.Ticket.Close)

			admin.GET("/notifications", ctl.Notification.List)
			admin.POST("/notifications/:id/read", ctl.Notification.MarkAsRead)
			admin.POST("/notifications/read-all", ctl.Notification.MarkAllAsRead)
			admin.GET("/badges", ctl.Notification.Badges)
			admin.GET("/views", ctl.Notification.ViewTotals)
		}
	}

	return router
}

func (r *Router) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := r.health.Ping(ctx); err != nil {
		middleware.GetLoggerFromContext(c).Error("Health check failed", err, map[string]interface{}{
			"backend": r.health.BackendName(),
		})
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"backend": r.health.BackendName(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"backend": r.health.BackendName(),
	})
}

// corsMiddleware echoes listed origins with credentials. A "*" entry answers
// every other origin with the literal wildcard and no credentials.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		listed, wildcard := false, false
		for _, allowedOrigin := range allowedOrigins {
			switch allowedOrigin {
			case "*":
				wildcard = true
			case origin:
				listed = origin != ""
			}
		}

		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		switch {
		case listed:
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		case wildcard:
			h.Set("Access-Control-Allow-Origin", "*")
		}

		h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
