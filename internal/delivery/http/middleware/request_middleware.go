package middleware

import (
	"net/http"
	"strconv"
	"time"

	"clinic-portal/internal/infrastructure/apiclient"
	"clinic-portal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestMiddleware tags every request with an id, forwards it upstream,
// records metrics and writes the access log.
type RequestMiddleware struct {
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewRequestMiddleware(log *logrus.Logger, m *metrics.Metrics) *RequestMiddleware {
	return &RequestMiddleware{log: log, metrics: m}
}

func (m *RequestMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		r = r.WithContext(apiclient.WithRequestID(r.Context(), id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := routeTemplate(r)
		elapsed := time.Since(start)
		if m.metrics != nil {
			m.metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
			m.metrics.HTTPLatency.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
		}

		m.log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"route":      route,
			"status":     rec.status,
			"duration":   elapsed.String(),
		}).Info("HTTP request")
	})
}

// routeTemplate keeps page ids out of metric labels.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
