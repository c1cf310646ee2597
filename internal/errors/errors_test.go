package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/internal/app/service"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{name: "vendor not found", err: service.ErrVendorNotFound, wantStatus: http.StatusNotFound, wantCode: VendorNotFound, wantMsg: "매장을 찾을 수 없습니다"},
		{name: "wrapped ticket closed", err: fmt.Errorf("reply: %w", service.ErrTicketClosed), wantStatus: http.StatusConflict, wantCode: TicketClosed},
		{name: "edit token", err: service.ErrInvalidEditToken, wantStatus: http.StatusUnauthorized, wantCode: AuthzEditTokenBad},
		{name: "blocked", err: service.ErrVendorBlocked, wantStatus: http.StatusForbidden, wantCode: AuthzVendorBlock},
		{name: "expired token", err: util.ErrExpiredToken, wantStatus: http.StatusUnauthorized, wantCode: AuthTokenExpired},
		{name: "validation", err: fmt.Errorf("%w: 할인율은 0에서 100 사이여야 합니다", util.ErrInvalidArgument), wantStatus: http.StatusBadRequest, wantCode: ValidationInvalidInput, wantMsg: "할인율은 0에서 100 사이여야 합니다"},
		{name: "duplicate", err: fmt.Errorf("insert: %w", store.ErrDuplicate), wantStatus: http.StatusConflict, wantCode: ResourceAlreadyExists},
		{name: "connection", err: fmt.Errorf("dial tcp: connection refused"), wantStatus: http.StatusServiceUnavailable, wantCode: InternalExternalAPI},
		{name: "unknown", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError, wantCode: InternalServerError},
		{name: "nil", err: nil, wantStatus: http.StatusInternalServerError, wantCode: InternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := FromError(tt.err)
			assert.Equal(t, tt.wantStatus, info.Status)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.NotEmpty(t, info.Message)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, info.Message)
			}
		})
	}
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/flyers/none", nil)

	Respond(c, service.ErrVendorNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, VendorNotFound, body.Error)
	assert.Equal(t, "매장을 찾을 수 없습니다", body.Message)
}
