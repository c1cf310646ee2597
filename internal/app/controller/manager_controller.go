package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/internal/app/service"
)

// ManagerController serves the vendor side. The edit token in the path is the
// only credential.
type ManagerController struct {
	vendorService       service.VendorService
	ticketService       service.TicketService
	notificationService service.NotificationService
}

func NewManagerController(
	vendorService service.VendorService,
	ticketService service.TicketService,
	notificationService service.NotificationService,
) *ManagerController {
	return &ManagerController{
		vendorService:       vendorService,
		ticketService:       ticketService,
		notificationService: notificationService,
	}
}

type SaveFlyerRequest struct {
	Vendor   service.VendorUpdate   `json:"vendor"`
	Products []service.ProductInput `json:"products"`
}

type OpenTicketRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type MessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// Get GET /api/v1/manage/:token
func (ctrl *ManagerController) Get(c *gin.Context) {
	flyer, err := ctrl.vendorService.GetByEditToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flyer)
}

// Save replaces the vendor profile and product list
// PUT /api/v1/manage/:token
func (ctrl *ManagerController) Save(c *gin.Context) {
	var req SaveFlyerRequest
	if !bindJSON(c, &req) {
		return
	}

	flyer, err := ctrl.vendorService.SaveFlyer(c.Request.Context(), c.Param("token"), req.Vendor, req.Products)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "저장되었습니다",
		"vendor":    flyer.Vendor,
		"products":  flyer.Products,
		"publicUrl": flyer.PublicURL,
	})
}

// ListTickets GET /api/v1/manage/:token/tickets
func (ctrl *ManagerController) ListTickets(c *gin.Context) {
	tickets, err := ctrl.ticketService.ListForVendor(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// OpenTicket POST /api/v1/manage/:token/tickets
func (ctrl *ManagerController) OpenTicket(c *gin.Context) {
	var req OpenTicketRequest
	if !bindJSON(c, &req) {
		return
	}
	thread, err := ctrl.ticketService.Open(c.Request.Context(), c.Param("token"), req.Subject, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, thread)
}

// TicketMessages GET /api/v1/manage/:token/tickets/:id/messages
func (ctrl *ManagerController) TicketMessages(c *gin.Context) {
	thread, err := ctrl.ticketService.VendorMessages(c.Request.Context(), c.Param("token"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// Reply POST /api/v1/manage/:token/tickets/:id/messages
func (ctrl *ManagerController) Reply(c *gin.Context) {
	var req MessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := ctrl.ticketService.VendorReply(c.Request.Context(), c.Param("token"), c.Param("id"), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Notifications GET /api/v1/manage/:token/notifications
func (ctrl *ManagerController) Notifications(c *gin.Context) {
	notifications, err := ctrl.notificationService.ListForVendor(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
