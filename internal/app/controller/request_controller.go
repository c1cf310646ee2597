package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/service"
	apperrors "github.com/ikkim/flyer-backend/internal/errors"
	"github.com/ikkim/flyer-backend/internal/middleware"
)

type RequestController struct {
	requestService  service.RequestService
	approvalService service.ApprovalService
}

func NewRequestController(requestService service.RequestService, approvalService service.ApprovalService) *RequestController {
	return &RequestController{
		requestService:  requestService,
		approvalService: approvalService,
	}
}

// Submit receives a shop registration request
// POST /api/v1/requests
func (ctrl *RequestController) Submit(c *gin.Context) {
	var input service.SubmitRequestInput
	if !bindJSON(c, &input) {
		return
	}

	req, err := ctrl.requestService.Submit(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "입점 신청이 접수되었습니다",
		"request": req,
	})
}

// List returns registration requests, optionally filtered by ?status=
// GET /api/v1/admin/requests
func (ctrl *RequestController) List(c *gin.Context) {
	var status *model.RequestStatus
	if s := c.Query("status"); s != "" {
		st := model.RequestStatus(s)
		status = &st
	}

	requests, err := ctrl.requestService.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"count":    len(requests),
	})
}

// Approve turns a pending request into a vendor
// POST /api/v1/admin/requests/:id/approve
func (ctrl *RequestController) Approve(c *gin.Context) {
	id := c.Param("id")
	result, err := ctrl.approvalService.ApproveRequest(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if result == nil {
		middleware.GetLoggerFromContext(c).Warn("Approve skipped", map[string]interface{}{
			"request_id": id,
		})
		apperrors.Conflict(c, apperrors.RequestNotPending, "대기 중인 신청만 승인할 수 있습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "승인되었습니다",
		"request":   result.Request,
		"vendor":    result.Vendor,
		"editUrl":   result.EditURL,
		"publicUrl": result.PublicURL,
	})
}

// Reject declines a pending request
// POST /api/v1/admin/requests/:id/reject
func (ctrl *RequestController) Reject(c *gin.Context) {
	rejected, err := ctrl.approvalService.RejectRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !rejected {
		apperrors.Conflict(c, apperrors.RequestNotPending, "대기 중인 신청만 거절할 수 있습니다")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "거절되었습니다"})
}
