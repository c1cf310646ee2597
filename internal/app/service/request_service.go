package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ikkim/flyer-backend/internal/app/model"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/pkg/logger"
	"github.com/ikkim/flyer-backend/pkg/util"
)

// SubmitRequestInput 입점 신청 폼
type SubmitRequestInput struct {
	ShopName    string  `json:"shopName"`
	ManagerName string  `json:"managerName"`
	Phone       *string `json:"phone"`
	KakaoURL    *string `json:"kakaoUrl"`
	Notes       *string `json:"notes"`
}

type RequestService interface {
	Submit(ctx context.Context, input SubmitRequestInput) (*model.Request, error)
	List(ctx context.Context, status *model.RequestStatus) ([]model.Request, error)
	Get(ctx context.Context, id string) (*model.Request, error)
}

type requestService struct {
	repos *repository.Repositories
}

func NewRequestService(repos *repository.Repositories) RequestService {
	return &requestService{repos: repos}
}

func (s *requestService) Submit(ctx context.Context, input SubmitRequestInput) (*model.Request, error) {
	shopName := strings.TrimSpace(input.ShopName)
	managerName := strings.TrimSpace(input.ManagerName)
	if shopName == "" {
		return nil, fmt.Errorf("%w: 매장명을 입력해주세요", util.ErrInvalidArgument)
	}
	if managerName == "" {
		return nil, fmt.Errorf("%w: 담당자 이름을 입력해주세요", util.ErrInvalidArgument)
	}

	req := &model.Request{
		ShopName:    shopName,
		ManagerName: managerName,
		Phone:       trimmed(input.Phone),
		KakaoURL:    trimmed(input.KakaoURL),
		Notes:       trimmed(input.Notes),
		Status:      model.RequestStatusPending,
	}
	if err := s.repos.Requests.Create(ctx, req); err != nil {
		return nil, err
	}

	notify(ctx, s.repos.Notifications, adminNotification(
		model.NotificationTypeNewRequest,
		"새 입점 신청",
		fmt.Sprintf("%s (%s) 입점 신청이 접수되었습니다", req.ShopName, req.ManagerName),
	))

	logger.Info("Request submitted", map[string]interface{}{
		"request_id": req.ID,
		"shop_name":  req.ShopName,
	})
	return req, nil
}

func (s *requestService) List(ctx context.Context, status *model.RequestStatus) ([]model.Request, error) {
	if status == nil {
		return s.repos.Requests.GetAll(ctx)
	}
	return s.repos.Requests.GetByStatus(ctx, *status)
}

func (s *requestService) Get(ctx context.Context, id string) (*model.Request, error) {
	req, err := s.repos.Requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

// trimmed returns nil for missing or blank values.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
