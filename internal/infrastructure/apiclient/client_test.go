package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-portal/config"
	"clinic-portal/pkg/metrics"
	"clinic-portal/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type specialtyPayload struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewClient(
		config.APIConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second},
		"access_token",
		log,
		validator.NewValidator(),
		metrics.NewMetrics("test", prometheus.NewRegistry()),
	)
}

func TestGetForwardsSessionAndRequestID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("access_token")
		require.NoError(t, err)
		assert.Equal(t, "tok", cookie.Value)
		assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		assert.Equal(t, "/api/specialties", r.URL.Path)

		json.NewEncoder(w).Encode([]specialtyPayload{{ID: 1, Name: "Терапевт"}})
	})

	ctx := WithRequestID(WithSession(context.Background(), "tok"), "req-1")
	var out []specialtyPayload
	require.NoError(t, client.Get(ctx, "/api/specialties", &out))
	assert.Equal(t, []specialtyPayload{{ID: 1, Name: "Терапевт"}}, out)
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Переопределение не найдено"}`))
	})

	err := client.Get(context.Background(), "/api/clinic-overrides/2025-06-01", &struct{}{})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsAPIError(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Переопределение не найдено", apiErr.Message)
}

func TestInvalidPayloadIsRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":""}]`))
	})

	var out []specialtyPayload
	err := client.Get(context.Background(), "/api/specialties", &out)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestPostSendsJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "79991234567", body["phone"])
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Post(context.Background(), "/api/request-code", map[string]string{"phone": "79991234567"}, nil)
	assert.NoError(t, err)
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	client := NewClient(config.APIConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, "access_token", log, nil, nil)

	err := client.Get(context.Background(), "/api/services", nil)
	require.Error(t, err)
	assert.False(t, IsAPIError(err))
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "/api/doctor-overrides/:id/:date", Endpoint("/api/doctor-overrides/12/2025-06-01"))
	assert.Equal(t, "/api/services", Endpoint("/api/services?x=1"))
}
