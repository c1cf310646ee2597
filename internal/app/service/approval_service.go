package service

import (
	"context"
	"fmt"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/ikkim/flyer-backend/pkg/metrics"
	"github.com/ikkim/flyer-backend/pkg/util"
)

// ApprovalResult is returned when a pending request becomes a vendor.
type ApprovalResult struct {
	Request   *model.Request `json:"request"`
	Vendor    *model.Vendor  `json:"vendor"`
	EditURL   string         `json:"editUrl"`
	PublicURL string         `json:"publicUrl"`
}

type ApprovalService interface {
	ApproveRequest(ctx context.Context, requestID string) (*ApprovalResult, error)
	RejectRequest(ctx context.Context, requestID string) (bool, error)
}

type approvalService struct {
	repos         *repository.Repositories
	publicBaseURL string
	metrics       *metrics.FlyerMetrics
}

func NewApprovalService(repos *repository.Repositories, publicBaseURL string, m *metrics.FlyerMetrics) ApprovalService {
	return &approvalService{
		repos:         repos,
		publicBaseURL: publicBaseURL,
		metrics:       m,
	}
}

// ApproveRequest marks a pending request approved and creates its vendor in one
// unit of work. It returns (nil, nil) when the request is missing or already decided.
func (s *approvalService) ApproveRequest(ctx context.Context, requestID string) (*ApprovalResult, error) {
	logger.Info("Approving request", map[string]interface{}{
		"request_id": requestID,
	})

	var result *ApprovalResult
	err := s.repos.Transact(ctx, func(ctx context.Context) error {
		req, err := s.repos.Requests.Decide(ctx, requestID, model.RequestStatusApproved)
		if err != nil {
			return err
		}
		if req == nil {
			return nil
		}

		vendor := &model.Vendor{
			ShopName:    req.ShopName,
			ManagerName: req.ManagerName,
			KakaoURL:    kakaoURLFor(req),
			Status:      model.VendorStatusActive,
		}
		if err := s.repos.Vendors.Create(ctx, vendor); err != nil {
			return fmt.Errorf("failed to create vendor: %w", err)
		}

		result = &ApprovalResult{
			Request:   req,
			Vendor:    vendor,
			EditURL:   EditURL(s.publicBaseURL, vendor.EditToken),
			PublicURL: PublicURL(s.publicBaseURL, vendor.Slug),
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to approve request", err, map[string]interface{}{
			"request_id": requestID,
		})
		return nil, err
	}
	if result == nil {
		logger.Warn("Request not approvable", map[string]interface{}{
			"request_id": requestID,
		})
		return nil, nil
	}

	s.metrics.IncDecision("approved")
	notify(ctx, s.repos.Notifications, vendorNotification(
		model.NotificationTypeRequestApproved,
		result.Vendor.ID,
		"입점 신청이 승인되었습니다",
		fmt.Sprintf("%s 전단 편집 링크가 발급되었습니다", result.Vendor.ShopName),
	))

	logger.Info("Request approved", map[string]interface{}{
		"request_id": requestID,
		"vendor_id":  result.Vendor.ID,
		"slug":       result.Vendor.Slug,
	})
	return result, nil
}

// RejectRequest reports false when the request is missing or not pending.
func (s *approvalService) RejectRequest(ctx context.Context, requestID string) (bool, error) {
	var rejected bool
	err := s.repos.Transact(ctx, func(ctx context.Context) error {
		decided, err := s.repos.Requests.Decide(ctx, requestID, model.RequestStatusRejected)
		rejected = decided != nil
		return err
	})
	if err != nil {
		logger.Error("Failed to reject request", err, map[string]interface{}{
			"request_id": requestID,
		})
		return false, err
	}
	if rejected {
		s.metrics.IncDecision("rejected")
	}
	return rejected, nil
}

// kakaoURLFor prefers the explicit link and falls back to one written in the notes.
func kakaoURLFor(req *model.Request) string {
	if req.KakaoURL != nil && *req.KakaoURL != "" {
		return *req.KakaoURL
	}
	if req.Notes != nil {
		return util.ExtractKakaoURL(*req.Notes)
	}
	return ""
}
