package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/ikkim/flyer-backend/config"
	"github.com/ikkim/flyer-backend/internal/app/controller"
	"github.com/ikkim/flyer-backend/internal/app/repository"
	"github.com/ikkim/flyer-backend/internal/app/service"
	apperrors "github.com/ikkim/flyer-backend/internal/errors"
	"github.com/ikkim/flyer-backend/internal/middleware"
	"github.com/ikkim/flyer-backend/internal/storage"
	"github.com/ikkim/flyer-backend/internal/store"
	"github.com/ikkim/flyer-backend/pkg/metrics"
	pkgredis "github.com/ikkim/flyer-backend/pkg/redis"
	"github.com/ikkim/flyer-backend/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAdminKey  = "super-secret-admin-key"
	testOrigin    = "http://localhost:5173"
	testPublicURL = "https://flyer.example.com"
)

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	hash, err := util.HashAdminKey(testAdminKey)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{testOrigin}},
	}

	repos := repository.New(store.NewLocalBackend(store.NewMemoryKV()))
	registry := prometheus.NewRegistry()
	flyerMetrics := metrics.NewFlyerMetrics(registry)

	requestService := service.NewRequestService(repos)
	vendorService := service.NewVendorService(repos, testPublicURL)
	ticketService := service.NewTicketService(repos)
	notificationService := service.NewNotificationService(repos)
	authService := service.NewAuthService(hash, "router-test-secret", time.Hour, pkgredis.NewSessionRevoker(client, "test:"))

	controllers := Controllers{
		Auth:         controller.NewAuthController(authService),
		Request:      controller.NewRequestController(requestService, service.NewApprovalService(repos, testPublicURL, flyerMetrics)),
		Flyer:        controller.NewFlyerController(service.NewFlyerService(repos, flyerMetrics)),
		Manager:      controller.NewManagerController(vendorService, ticketService, notificationService),
		Vendor:       controller.NewVendorController(vendorService),
		Ticket:       controller.NewTicketController(ticketService),
		Notification: controller.NewNotificationController(notificationService, service.NewDashboardService(repos)),
		Upload:       controller.NewUploadController(service.NewUploadService(repos, storage.NewInlineUploader(), flyerMetrics)),
	}

	r := NewRouter(controllers, middleware.NewAuthMiddleware(authService), repos, registry, cfg)
	return r.Setup()
}

func send(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := send(router, http.MethodPost, "/api/v1/admin/login", "", gin.H{"adminKey": testAdminKey})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, ok := decodeBody(t, w)["accessToken"].(string)
	require.True(t, ok)
	return token
}

func TestHealthAndMetrics(t *testing.T) {
	router := setupRouterTest(t)

	w := send(router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decodeBody(t, w)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, "local", health["backend"])

	w = send(router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "flyer_public_views_total")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := setupRouterTest(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/admin/requests"},
		{http.MethodGet, "/api/v1/admin/vendors"},
		{http.MethodGet, "/api/v1/admin/badges"},
		{http.MethodPost, "/api/v1/admin/requests/x/approve"},
		{http.MethodPost, "/api/v1/admin/logout"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			w := send(router, p.method, p.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	w := send(router, http.MethodPost, "/api/v1/admin/login", "", gin.H{"adminKey": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.AuthInvalidCredentials, decodeBody(t, w)["error"])
}

func TestAdminSessionLifecycle(t *testing.T) {
	router := setupRouterTest(t)
	token := login(t, router)

	w := send(router, http.MethodGet, "/api/v1/admin/badges", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(router, http.MethodPost, "/api/v1/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = send(router, http.MethodGet, "/api/v1/admin/badges", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEndToEndFlyerFlow(t *testing.T) {
	router := setupRouterTest(t)
	token := login(t, router)

	w := send(router, http.MethodPost, "/api/v1/requests", "", gin.H{
		"shopName":    "신세계 강남점",
		"managerName": "이지은",
		"kakaoUrl":    "https://open.kakao.com/o/sample2",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	requestID := decodeBody(t, w)["request"].(map[string]interface{})["id"].(string)

	w = send(router, http.MethodGet, "/api/v1/admin/badges", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["pendingRequests"])

	w = send(router, http.MethodPost, "/api/v1/admin/requests/"+requestID+"/approve", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	approved := decodeBody(t, w)
	vendor := approved["vendor"].(map[string]interface{})
	slug := vendor["slug"].(string)
	editToken := vendor["editToken"].(string)
	assert.Len(t, slug, util.DefaultRandomSlugLen)
	assert.Equal(t, "https://open.kakao.com/o/sample2", vendor["kakaoUrl"])
	assert.True(t, strings.HasSuffix(approved["publicUrl"].(string), "/s/"+slug))

	w = send(router, http.MethodPut, "/api/v1/manage/"+editToken, "", gin.H{
		"products": []gin.H{{"name": "원피스", "originalPrice": 89000, "discountRate": 30}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = send(router, http.MethodGet, "/api/v1/flyers/"+slug, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := decodeBody(t, w)["products"].([]interface{})
	require.Len(t, products, 1)
	assert.Equal(t, float64(62300), products[0].(map[string]interface{})["salePrice"])

	w = send(router, http.MethodGet, "/metrics", "", nil)
	assert.Contains(t, w.Body.String(), `flyer_request_decisions_total{decision="approved"} 1`)
	assert.Contains(t, w.Body.String(), "flyer_public_views_total 1")
}

func TestCORS(t *testing.T) {
	router := setupRouterTest(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/requests", nil)
	req.Header.Set("Origin", testOrigin)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_Origins(t *testing.T) {
	const evil = "https://evil.example.com"

	tests := []struct {
		name            string
		allowed         []string
		origin          string
		wantOrigin      string
		wantCredentials string
	}{
		{"listed origin", []string{testOrigin}, testOrigin, testOrigin, "true"},
		{"unlisted origin", []string{testOrigin}, evil, "", ""},
		{"wildcard does not reflect", []string{"*"}, evil, "*", ""},
		{"listed origin beside wildcard", []string{"*", testOrigin}, testOrigin, testOrigin, "true"},
		{"no origin header", []string{testOrigin}, "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(corsMiddleware(tt.allowed))
			engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, w.Header().Get("Access-Control-Allow-Credentials"))
			assert.Contains(t, w.Header().Values("Vary"), "Origin")
		})
	}
}
