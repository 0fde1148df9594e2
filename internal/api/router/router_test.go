package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dohuuduy/quanlytailieu-sub000/config"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/api/handler"
	"github.com/dohuuduy/quanlytailieu-sub000/internal/service"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/authz"
	"github.com/dohuuduy/quanlytailieu-sub000/pkg/jwt"
)

type denyLimiter struct{}

func (denyLimiter) CheckRateLimit(context.Context, string, int, time.Duration) (bool, error) {
	return false, nil
}

func newTestEngine(t *testing.T, deps func(*Deps)) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:      8080,
			CORS:      config.CORSConfig{AllowOrigins: []string{"http://localhost:5173"}},
			RateLimit: config.RateLimitConfig{Limit: 10, Window: time.Minute},
		},
		Auth: config.AuthConfig{JWTSecret: "router-test-secret-0123", Issuer: "registry", AccessTokenTTL: time.Hour},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	az, err := authz.NewAuthorizer()
	if err != nil {
		t.Fatalf("加载访问策略失败: %v", err)
	}

	// 服务均为 nil：下列用例都在进入 Handler 前结束
	d := Deps{
		Config:     cfg,
		Handler:    handler.NewHandler(&service.Service{}),
		JWT:        jwtMgr,
		Authorizer: az,
		Logger:     zap.NewNop(),
	}
	if deps != nil {
		deps(&d)
	}
	return Setup(d), jwtMgr
}

func bearer(t *testing.T, m *jwt.Manager, role string) string {
	t.Helper()
	tok, err := m.GenerateAccessToken("user-1", role)
	if err != nil {
		t.Fatalf("生成令牌失败: %v", err)
	}
	return "Bearer " + tok
}

func TestSetup_RegistersRoutes(t *testing.T) {
	r, _ := newTestEngine(t, nil)

	got := make(map[string]bool)
	for _, ri := range r.Routes() {
		got[ri.Method+" "+ri.Path] = true
	}

	want := []string{
		"GET /health",
		"GET /api/v1/categories",
		"POST /api/v1/categories",
		"GET /api/v1/categories/:id/documents",
		"DELETE /api/v1/standards/:id",
		"GET /api/v1/standards/:id/schedules",
		"GET /api/v1/users/me",
		"PATCH /api/v1/users/:id",
		"POST /api/v1/documents/:id/approve",
		"POST /api/v1/documents/:id/cancel",
		"GET /api/v1/documents/:id/history",
		"GET /api/v1/schedules/:id",
		"GET /api/v1/dashboard/stats",
		"GET /api/v1/export/documents.xlsx",
		"GET /api/v1/export/schedules.ics",
	}
	for _, w := range want {
		if !got[w] {
			t.Errorf("缺少路由 %s", w)
		}
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestEngine(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}

	r, _ = newTestEngine(t, func(d *Deps) {
		d.Health = func() error { return errors.New("db down") }
	})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("依赖不可用时期望 503，实际 %d", w.Code)
	}
}

func TestAPI_RequiresToken(t *testing.T) {
	r, _ := newTestEngine(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际 %d", w.Code)
	}
}

func TestAPI_PolicyDenies(t *testing.T) {
	r, m := newTestEngine(t, nil)

	tests := []struct {
		method, path, role string
	}{
		{http.MethodDelete, "/api/v1/documents/doc-1", "user"},
		{http.MethodDelete, "/api/v1/categories/cat-1", "approver"},
		{http.MethodPost, "/api/v1/documents/doc-1/approve", "user"},
		{http.MethodPost, "/api/v1/documents/doc-1/cancel", "user"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" as "+tt.role, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", bearer(t, m, tt.role))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusForbidden {
				t.Errorf("期望 403，实际 %d", w.Code)
			}
		})
	}
}

func TestAPI_WritesAreRateLimited(t *testing.T) {
	r, m := newTestEngine(t, func(d *Deps) { d.Limiter = denyLimiter{} })

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/documents/doc-1", nil)
	req.Header.Set("Authorization", bearer(t, m, "admin"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("期望 429，实际 %d", w.Code)
	}
}
