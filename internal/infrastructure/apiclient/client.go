package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"clinic-portal/config"
	"clinic-portal/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// Validator checks decoded payloads before they leave the client.
type Validator interface {
	Validate(i interface{}) error
}

type contextKey string

const (
	sessionKey   contextKey = "session_token"
	requestIDKey contextKey = "request_id"
)

// WithSession attaches the browser's session token to ctx. Every request
// made with ctx forwards it as the session cookie.
func WithSession(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionKey, token)
}

func SessionFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(sessionKey).(string)
	return token, ok && token != ""
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// Client talks JSON to the clinic REST API.
type Client struct {
	http       *http.Client
	baseURL    string
	cookieName string
	log        *logrus.Logger
	validator  Validator
	metrics    *metrics.Metrics
}

func NewClient(cfg config.APIConfig, cookieName string, log *logrus.Logger, validator Validator, m *metrics.Metrics) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:       &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		cookieName: cookieName,
		log:        log,
		validator:  validator,
		metrics:    m,
	}
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	_, err := c.Send(ctx, http.MethodGet, path, nil, out)
	return err
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.Send(ctx, http.MethodPost, path, body, out)
	return err
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	_, err := c.Send(ctx, http.MethodPut, path, body, out)
	return err
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Send(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// Send performs one request. A nil out discards the response body. The
// response headers are returned so callers can read Set-Cookie.
func (c *Client) Send(ctx context.Context, method, path string, body, out interface{}) (http.Header, error) {
	fields := logrus.Fields{"method": method, "path": path}
	if id, ok := RequestIDFromContext(ctx); ok {
		fields["request_id"] = id
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := SessionFromContext(ctx); ok {
		req.AddCookie(&http.Cookie{Name: c.cookieName, Value: token})
	}
	if id, ok := RequestIDFromContext(ctx); ok {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.observe(method, path, resp, time.Since(start))
	if err != nil {
		fields["error"] = err.Error()
		c.log.WithFields(fields).Warn("api.request_failed")
		return nil, err
	}
	defer resp.Body.Close()

	fields["status"] = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, Status: resp.StatusCode, Message: errorMessage(resp.Body)}
		c.log.WithFields(fields).Debug("api.request_rejected")
		return resp.Header, apiErr
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			fields["error"] = err.Error()
			c.log.WithFields(fields).Warn("api.decode_failed")
			return resp.Header, fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, method, path, err)
		}
		if err := c.check(out); err != nil {
			fields["error"] = err.Error()
			c.log.WithFields(fields).Warn("api.validation_failed")
			return resp.Header, fmt.Errorf("%w: %s %s: %v", ErrInvalidResponse, method, path, err)
		}
	}

	c.log.WithFields(fields).Debug("api.request_done")
	return resp.Header, nil
}

// check validates a decoded struct, or each struct element of a decoded slice.
func (c *Client) check(out interface{}) error {
	if c.validator == nil {
		return nil
	}
	v := reflect.Indirect(reflect.ValueOf(out))
	switch v.Kind() {
	case reflect.Struct:
		return c.validator.Validate(out)
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			if elem.Kind() == reflect.Struct {
				if err := c.validator.Validate(elem.Addr().Interface()); err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
			}
		}
	}
	return nil
}

func (c *Client) observe(method, path string, resp *http.Response, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	status := "error"
	if resp != nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	endpoint := Endpoint(path)
	c.metrics.UpstreamRequests.WithLabelValues(method, endpoint, status).Inc()
	c.metrics.UpstreamLatency.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// Endpoint collapses ids and dates in a path so it can be used as a label.
func Endpoint(path string) string {
	path, _, _ = strings.Cut(path, "?")
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if _, err := strconv.Atoi(p); err == nil {
			parts[i] = ":id"
			continue
		}
		if _, err := time.Parse("2006-01-02", p); err == nil {
			parts[i] = ":date"
		}
	}
	return strings.Join(parts, "/")
}

func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
