package service

import "errors"

var (
	ErrRequestNotFound      = errors.New("신청을 찾을 수 없습니다")
	ErrVendorNotFound       = errors.New("매장을 찾을 수 없습니다")
	ErrInvalidEditToken     = errors.New("유효하지 않은 편집 링크입니다")
	ErrVendorBlocked        = errors.New("차단된 매장은 전단을 수정할 수 없습니다")
	ErrTicketNotFound       = errors.New("문의를 찾을 수 없습니다")
	ErrTicketClosed         = errors.New("종료된 문의에는 답변할 수 없습니다")
	ErrNotificationNotFound = errors.New("알림을 찾을 수 없습니다")
	ErrInvalidAdminKey      = errors.New("관리자 키가 올바르지 않습니다")
	ErrAdminNotConfigured   = errors.New("관리자 키가 설정되지 않았습니다")
	ErrPresignUnavailable   = errors.New("직접 업로드를 지원하지 않는 저장소입니다")
)
