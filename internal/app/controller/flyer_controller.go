package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/internal/app/service"
)

type FlyerController struct {
	flyerService service.FlyerService
}

func NewFlyerController(flyerService service.FlyerService) *FlyerController {
	return &FlyerController{flyerService: flyerService}
}

// GetPublicFlyer serves the customer-facing flyer
// GET /api/v1/flyers/:slug
func (ctrl *FlyerController) GetPublicFlyer(c *gin.Context) {
	flyer, err := ctrl.flyerService.GetPublicFlyer(c.Request.Context(), c.Param("slug"), service.Viewer{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flyer)
}

// ViewStats returns daily view counts for a vendor
// GET /api/v1/admin/vendors/:id/stats?days=7
func (ctrl *FlyerController) ViewStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	stats, err := ctrl.flyerService.ViewStats(c.Request.Context(), c.Param("id"), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
