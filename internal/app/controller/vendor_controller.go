package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/service"
)

// VendorController is the admin vendor console.
type VendorController struct {
	vendorService service.VendorService
}

func NewVendorController(vendorService service.VendorService) *VendorController {
	return &VendorController{vendorService: vendorService}
}

type UpdateVendorStatusRequest struct {
	Status model.VendorStatus `json:"status" binding:"required"`
}

// List GET /api/v1/admin/vendors?status=
func (ctrl *VendorController) List(c *gin.Context) {
	var status *model.VendorStatus
	if s := c.Query("status"); s != "" {
		st := model.VendorStatus(s)
		status = &st
	}
	vendors, err := ctrl.vendorService.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vendors": vendors,
		"count":   len(vendors),
	})
}

// Get GET /api/v1/admin/vendors/:id
func (ctrl *VendorController) Get(c *gin.Context) {
	detail, err := ctrl.vendorService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Update PUT /api/v1/admin/vendors/:id
func (ctrl *VendorController) Update(c *gin.Context) {
	var req service.VendorUpdate
	if !bindJSON(c, &req) {
		return
	}
	vendor, err := ctrl.vendorService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// UpdateStatus PUT /api/v1/admin/vendors/:id/status
func (ctrl *VendorController) UpdateStatus(c *gin.Context) {
	var req UpdateVendorStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	vendor, err := ctrl.vendorService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// Delete DELETE /api/v1/admin/vendors/:id
func (ctrl *VendorController) Delete(c *gin.Context) {
	if err := ctrl.vendorService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "삭제되었습니다"})
}

// RegenerateEditToken POST /api/v1/admin/vendors/:id/edit-token
func (ctrl *VendorController) RegenerateEditToken(c *gin.Context) {
	detail, err := ctrl.vendorService.RegenerateEditToken(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vendor":  detail.Vendor,
		"editUrl": detail.EditURL,
	})
}
