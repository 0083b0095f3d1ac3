package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinic-portal/internal/delivery/http/handler"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/repository"
	"clinic-portal/internal/usecase"
	"clinic-portal/internal/viewmodel"
	"clinic-portal/pkg/jwt"
	"clinic-portal/pkg/metrics"
	"clinic-portal/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticParser struct{}

func (staticParser) Parse(token string) (*jwt.Claims, error) {
	return &jwt.Claims{UserID: 9}, nil
}

type roleAccounts struct {
	usecase.AccountUsecase
	role entity.Role
}

func (a roleAccounts) ResolveRole(context.Context, int) (entity.Role, error) {
	return a.role, nil
}

func newTestServer(t *testing.T, role entity.Role) (http.Handler, *prometheus.Registry) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	v := validator.NewValidator()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics("test", reg)

	accounts := roleAccounts{role: role}
	registry := viewmodel.NewRegistry(&viewmodel.Deps{Log: log, Validator: v, Now: time.Now, Account: accounts}, time.Minute, log, m)
	t.Cleanup(registry.Close)

	auditLogs := usecase.NewAuditLogUsecase(log, repository.NewAuditLogRepository(log, 10))

	router := NewRouter(
		handler.NewAuthHandler(accounts, v),
		handler.NewPageHandler(registry, v, log),
		handler.NewAuditLogHandler(auditLogs, v),
		middleware.NewAuthMiddleware(staticParser{}, accounts, "access_token", log),
		middleware.NewCORSMiddleware(),
		middleware.NewRequestMiddleware(log, m),
		middleware.NewRateLimiter(middleware.RateLimiterConfig{}),
		reg,
		registry.Len,
	)
	return router.Setup(), reg
}

func serve(h http.Handler, method, path string, withCookie bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if withCookie {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "token"})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	h, _ := newTestServer(t, entity.RoleAdmin)

	rec := serve(h, http.MethodGet, "/health", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","pages":0}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = serve(h, http.MethodGet, "/metrics", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_http_requests_total"))
}

func TestAuditLogsAreSuperadminOnly(t *testing.T) {
	admin, _ := newTestServer(t, entity.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, serve(admin, http.MethodGet, "/ui/audit-logs", false).Code)
	assert.Equal(t, http.StatusForbidden, serve(admin, http.MethodGet, "/ui/audit-logs", true).Code)

	super, _ := newTestServer(t, entity.RoleSuperadmin)
	assert.Equal(t, http.StatusOK, serve(super, http.MethodGet, "/ui/audit-logs?page=1", true).Code)
	assert.Equal(t, http.StatusBadRequest, serve(super, http.MethodGet, "/ui/audit-logs?per_page=x", true).Code)
	assert.Equal(t, http.StatusNotFound, serve(super, http.MethodGet, "/ui/audit-logs/3", true).Code)
}

func TestPreflightIsAnswered(t *testing.T) {
	h, _ := newTestServer(t, entity.RoleAdmin)

	req := httptest.NewRequest(http.MethodOptions, "/ui/pages/appointment", nil)
	req.Header.Set("Origin", "https://clinic.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
