package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ikkim/flyer-backend/internal/app/service"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/util"
)

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Status  int    // HTTP 상태 코드
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// sentinels maps service errors to their HTTP form. The message is the
// sentinel's own Korean text.
var sentinels = []struct {
	err    error
	status int
	code   string
}{
	{service.ErrRequestNotFound, http.StatusNotFound, RequestNotFound},
	{service.ErrVendorNotFound, http.StatusNotFound, VendorNotFound},
	{service.ErrTicketNotFound, http.StatusNotFound, TicketNotFound},
	{service.ErrNotificationNotFound, http.StatusNotFound, NotificationNotFound},
	{service.ErrInvalidEditToken, http.StatusUnauthorized, AuthzEditTokenBad},
	{service.ErrVendorBlocked, http.StatusForbidden, AuthzVendorBlock},
	{service.ErrTicketClosed, http.StatusConflict, TicketClosed},
	{service.ErrInvalidAdminKey, http.StatusUnauthorized, AuthInvalidCredentials},
	{service.ErrAdminNotConfigured, http.StatusServiceUnavailable, AuthNotConfigured},
	{service.ErrPresignUnavailable, http.StatusNotImplemented, UploadPresignUnavail},
	{util.ErrExpiredToken, http.StatusUnauthorized, AuthTokenExpired},
	{util.ErrInvalidToken, http.StatusUnauthorized, AuthTokenInvalid},
}

// FromError 에러를 파싱하여 HTTP 상태, 코드, 사용자 메시지로 변환
// 보안상 민감한 정보(쿼리, 연결 문자열)는 노출하지 않는다
func FromError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: "서버 오류가 발생했습니다",
		}
	}

	// 1. 서비스 계층 에러
	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return ErrorInfo{Status: s.status, Code: s.code, Message: s.err.Error()}
		}
	}

	// 2. 입력 검증 에러 ("잘못된 입력입니다: 상세" 형식에서 상세만 노출)
	if errors.Is(err, util.ErrInvalidArgument) {
		msg := err.Error()
		if i := strings.Index(msg, ": "); i >= 0 {
			msg = msg[i+2:]
		}
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidInput, Message: msg}
	}

	// 3. 유니크 제약 위반
	if store.IsDuplicate(err) {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ResourceAlreadyExists,
			Message: "이미 존재하는 데이터입니다. 다시 시도해주세요",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	// 4. 네트워크/연결 에러
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Code:    InternalExternalAPI,
			Message: "외부 서비스 연결에 실패했습니다. 잠시 후 다시 시도해주세요",
		}
	}

	// 5. 기본 내부 서버 오류
	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요",
	}
}
