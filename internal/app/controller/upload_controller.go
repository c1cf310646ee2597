package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/internal/app/service"
	apperrors "github.com/ikkim/flyer-backend/internal/errors"
	"github.com/ikkim/flyer-backend/internal/middleware"
	"github.com/ikkim/flyer-backend/internal/storage"
)

type UploadController struct {
	uploadService service.UploadService
}

func NewUploadController(uploadService service.UploadService) *UploadController {
	return &UploadController{uploadService: uploadService}
}

type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// Upload stores one image from the multipart field "file"
// POST /api/v1/manage/:token/uploads
func (ctrl *UploadController) Upload(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	header, err := c.FormFile("file")
	if err != nil {
		log.Warn("Missing upload file", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.UploadInvalidFile, "업로드할 파일을 선택해주세요")
		return
	}
	if header.Size > storage.MaxImageSize {
		apperrors.BadRequest(c, apperrors.UploadInvalidFile, "이미지는 5MB 이하만 업로드할 수 있습니다")
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxImageSize+1))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := ctrl.uploadService.Upload(c.Request.Context(), c.Param("token"), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Presign returns a direct upload URL when S3 is configured
// POST /api/v1/manage/:token/uploads/presign
func (ctrl *UploadController) Presign(c *gin.Context) {
	var req PresignRequest
	if !bindJSON(c, &req) {
		return
	}
	presigned, err := ctrl.uploadService.Presign(c.Request.Context(), c.Param("token"), req.Filename, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, presigned)
}
