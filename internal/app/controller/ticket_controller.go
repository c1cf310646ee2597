package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/service"
)

// TicketController is the admin side of vendor support tickets.
type TicketController struct {
	ticketService service.TicketService
}

func NewTicketController(ticketService service.TicketService) *TicketController {
	return &TicketController{ticketService: ticketService}
}

// List GET /api/v1/admin/tickets?status=
func (ctrl *TicketController) List(c *gin.Context) {
	var status *model.TicketStatus
	if s := c.Query("status"); s != "" {
		st := model.TicketStatus(s)
		status = &st
	}
	tickets, err := ctrl.ticketService.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

// Messages GET /api/v1/admin/tickets/:id/messages
func (ctrl *TicketController) Messages(c *gin.Context) {
	thread, err := ctrl.ticketService.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

// Reply POST /api/v1/admin/tickets/:id/messages
func (ctrl *TicketController) Reply(c *gin.Context) {
	var req MessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := ctrl.ticketService.AdminReply(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Close POST /api/v1/admin/tickets/:id/close
func (ctrl *TicketController) Close(c *gin.Context) {
	ticket, err := ctrl.ticketService.Close(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}
