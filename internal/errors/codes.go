package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 인증 (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // 로그인 필요
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // 잘못된 관리자 키
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthNotConfigured      = "AUTH_NOT_CONFIGURED"      // 관리자 키 미설정

	// ==================== 인가/권한 (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // 접근 권한 없음
	AuthzEditTokenBad = "AUTHZ_EDIT_TOKEN"     // 잘못된 편집 링크
	AuthzVendorBlock  = "AUTHZ_VENDOR_BLOCKED" // 차단된 매장

	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationRequired     = "VALIDATION_REQUIRED"      // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 신청 (REQUEST_) ====================
	RequestNotFound   = "REQUEST_NOT_FOUND"   // 신청 없음
	RequestNotPending = "REQUEST_NOT_PENDING" // 이미 처리된 신청

	// ==================== 매장 (VENDOR_) ====================
	VendorNotFound = "VENDOR_NOT_FOUND" // 매장 없음

	// ==================== 문의 (TICKET_) ====================
	TicketNotFound = "TICKET_NOT_FOUND" // 문의 없음
	TicketClosed   = "TICKET_CLOSED"    // 종료된 문의

	// ==================== 알림 (NOTIFICATION_) ====================
	NotificationNotFound = "NOTIFICATION_NOT_FOUND" // 알림 없음

	// ==================== 업로드 (UPLOAD_) ====================
	UploadInvalidFile    = "UPLOAD_INVALID_FILE"    // 잘못된 파일
	UploadFailed         = "UPLOAD_FAILED"          // 업로드 실패
	UploadPresignUnavail = "UPLOAD_PRESIGN_UNAVAIL" // 직접 업로드 미지원

	// ==================== 서버 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // 외부 API 오류
)
