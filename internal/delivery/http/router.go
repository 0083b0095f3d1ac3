package http

import (
	"net/http"

	"clinic-portal/internal/delivery/http/handler"
	"clinic-portal/internal/delivery/http/middleware"
	"clinic-portal/pkg/response"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	pageHandler       *handler.PageHandler
	auditLogHandler   *handler.AuditLogHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	requestMiddleware *middleware.RequestMiddleware
	rateLimiter       *middleware.RateLimiter
	gatherer          prometheus.Gatherer
	pagesMounted      func() int
}

func NewRouter(
	authHandler *handler.AuthHandler,
	pageHandler *handler.PageHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	requestMiddleware *middleware.RequestMiddleware,
	rateLimiter *middleware.RateLimiter,
	gatherer prometheus.Gatherer,
	pagesMounted func() int,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		pageHandler:       pageHandler,
		auditLogHandler:   auditLogHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		requestMiddleware: requestMiddleware,
		rateLimiter:       rateLimiter,
		gatherer:          gatherer,
		pagesMounted:      pagesMounted,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	if r.gatherer != nil {
		r.router.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	// Auth (public)
	api := r.router.PathPrefix("/api").Subrouter()
	api.Handle("/login", r.rateLimiter.Handle(http.HandlerFunc(r.authHandler.Login))).Methods(http.MethodPost)

	// Pages. Anonymous visitors may open the pages that allow it, the
	// registry decides per kind.
	pages := r.router.PathPrefix("/ui/pages").Subrouter()
	pages.Use(r.authMiddleware.Optional)
	pages.Handle("/{kind}", r.rateLimiter.Handle(http.HandlerFunc(r.pageHandler.Mount))).Methods(http.MethodPost)
	pages.HandleFunc("/{id}", r.pageHandler.Get).Methods(http.MethodGet)
	pages.HandleFunc("/{id}", r.pageHandler.Unmount).Methods(http.MethodDelete)
	pages.HandleFunc("/{id}/actions/{action}", r.pageHandler.Dispatch).Methods(http.MethodPost)
	pages.HandleFunc("/{id}/events", r.pageHandler.Event).Methods(http.MethodPost)

	// Audit trail (superadmin only)
	audit := r.router.PathPrefix("/ui/audit-logs").Subrouter()
	audit.Use(r.authMiddleware.Authenticate)
	audit.Use(middleware.RequireSuperadmin)
	audit.HandleFunc("", r.auditLogHandler.SearchAuditLogs).Methods(http.MethodGet)
	audit.HandleFunc("/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests must match a route for the CORS middleware to run
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.router.Use(r.requestMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)
	r.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"pages":  r.pagesMounted(),
	})
}
