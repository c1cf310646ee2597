package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/internal/storage"
	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/ikkim/flyer-backend/pkg/metrics"
	"github.com/ikkim/flyer-backend/pkg/util"
)

type UploadResult struct {
	URL      string `json:"url"`
	Uploader string `json:"uploader"`
}

type UploadService interface {
	Upload(ctx context.Context, token, filename, contentType string, data []byte) (*UploadResult, error)
	Presign(ctx context.Context, token, filename, contentType string) (*storage.PresignedUpload, error)
}

type uploadService struct {
	repos    *repository.Repositories
	uploader storage.ImageUploader
	metrics  *metrics.FlyerMetrics
}

func NewUploadService(repos *repository.Repositories, uploader storage.ImageUploader, m *metrics.FlyerMetrics) UploadService {
	return &uploadService{
		repos:    repos,
		uploader: uploader,
		metrics:  m,
	}
}

// folderFor resolves the edit token to the vendor's upload folder.
func (s *uploadService) folderFor(ctx context.Context, token string) (string, error) {
	vendor, err := s.repos.Vendors.GetByEditToken(ctx, token)
	if err != nil {
		return "", err
	}
	if vendor == nil {
		return "", ErrInvalidEditToken
	}
	return "vendors/" + vendor.ID, nil
}

func validateImage(contentType string, size int64) error {
	if err := storage.ValidateContentType(contentType, storage.AllowedImageTypes); err != nil {
		return fmt.Errorf("%w: 지원하지 않는 이미지 형식입니다 (jpeg, png, gif, webp)", util.ErrInvalidArgument)
	}
	if err := storage.ValidateFileSize(size, storage.MaxImageSize); err != nil {
		if errors.Is(err, storage.ErrEmptyFile) {
			return fmt.Errorf("%w: 빈 파일은 업로드할 수 없습니다", util.ErrInvalidArgument)
		}
		return fmt.Errorf("%w: 이미지는 5MB 이하만 업로드할 수 있습니다", util.ErrInvalidArgument)
	}
	return nil
}

func (s *uploadService) Upload(ctx context.Context, token, filename, contentType string, data []byte) (*UploadResult, error) {
	if err := validateImage(contentType, int64(len(data))); err != nil {
		return nil, err
	}
	folder, err := s.folderFor(ctx, token)
	if err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, folder, filename, contentType, data)
	if err != nil {
		logger.Error("Failed to upload image", err, map[string]interface{}{
			"folder":   folder,
			"uploader": s.uploader.Name(),
		})
		return nil, err
	}
	s.metrics.IncUpload(s.uploader.Name())

	logger.Info("Image uploaded", map[string]interface{}{
		"folder":   folder,
		"uploader": s.uploader.Name(),
		"size":     len(data),
	})
	return &UploadResult{URL: url, Uploader: s.uploader.Name()}, nil
}

// Presign hands out a direct upload URL when the uploader supports it.
func (s *uploadService) Presign(ctx context.Context, token, filename, contentType string) (*storage.PresignedUpload, error) {
	presigner, ok := s.uploader.(storage.Presigner)
	if !ok {
		return nil, ErrPresignUnavailable
	}
	if err := storage.ValidateContentType(contentType, storage.AllowedImageTypes); err != nil {
		return nil, fmt.Errorf("%w: 지원하지 않는 이미지 형식입니다 (jpeg, png, gif, webp)", util.ErrInvalidArgument)
	}
	folder, err := s.folderFor(ctx, token)
	if err != nil {
		return nil, err
	}
	presigned, err := presigner.PresignUpload(ctx, folder, filename, contentType)
	if err != nil {
		logger.Error("Failed to presign upload", err, map[string]interface{}{
			"folder": folder,
		})
		return nil, err
	}
	return presigned, nil
}
