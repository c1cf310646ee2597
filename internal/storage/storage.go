package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const MaxImageSize = 5 << 20 // 5 MiB

var AllowedImageTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

var (
	ErrPresignUnsupported = errors.New("presigned uploads are not available for this uploader")
	ErrEmptyFile          = errors.New("file is empty")
)

// ImageUploader stores image bytes and returns an opaque reference (URL or
// data URL) that is saved verbatim on the record.
type ImageUploader interface {
	Name() string
	Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error)
}

// PresignedUpload lets the browser PUT the file directly.
type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	Key       string `json:"key"`
}

// Presigner is implemented by uploaders that support direct browser uploads.
type Presigner interface {
	PresignUpload(ctx context.Context, folder, filename, contentType string) (*PresignedUpload, error)
}

// ValidateFileSize validates the file size
func ValidateFileSize(size int64, maxSize int64) error {
	if size == 0 {
		return ErrEmptyFile
	}
	if size > maxSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", maxSize)
	}
	return nil
}

// ValidateContentType validates the content type
func ValidateContentType(contentType string, allowedTypes []string) error {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "image/jpg" {
		ct = "image/jpeg"
	}
	for _, allowed := range allowedTypes {
		if ct == allowed {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}

// InlineUploader encodes the image as a data URL; used when no bucket is configured.
type InlineUploader struct{}

func NewInlineUploader() *InlineUploader { return &InlineUploader{} }

func (InlineUploader) Name() string { return "inline" }

func (InlineUploader) Upload(_ context.Context, _, _, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func objectKey(folder, id, filename string) string {
	if folder == "" {
		folder = "uploads"
	}
	return fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), id, strings.ToLower(filepath.Ext(filename)))
}
