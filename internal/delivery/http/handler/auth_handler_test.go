package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"
	"clinic-portal/internal/infrastructure/apiclient"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	usecase.AccountUsecase
	err    error
	logins []string
}

func (f *fakeAccounts) Login(_ context.Context, login, _ string) (*repository.Session, error) {
	f.logins = append(f.logins, login)
	if f.err != nil {
		return nil, f.err
	}
	role := entity.RoleDoctor
	if !strings.Contains(login, "@") {
		role = entity.RolePatient
	}
	return &repository.Session{
		Role:    role,
		Token:   "jwt",
		Cookies: []string{"access_token=jwt; Path=/; HttpOnly"},
	}, nil
}

func TestLoginAcceptsEmailAndPhone(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantRole string
	}{
		{"staff email", `{"login":"doc@clinic.ru","password":"secret"}`, http.StatusOK, "doctor"},
		{"patient digits", `{"login":"79991234567","password":"secret"}`, http.StatusOK, "patient"},
		{"patient formatted", `{"login":"+7 (999) 123-45-67","password":"secret"}`, http.StatusOK, "patient"},
		{"short email domain", `{"login":"doc@clinic.r","password":"secret"}`, http.StatusBadRequest, ""},
		{"neither", `{"login":"doctor","password":"secret"}`, http.StatusBadRequest, ""},
		{"no password", `{"login":"79991234567"}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &fakeAccounts{}
			h := NewAuthHandler(accounts, validator.NewValidator())

			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body)))

			if tt.wantCode != http.StatusOK {
				assert.Equal(t, tt.wantCode, rec.Code)
				assert.Empty(t, accounts.logins)
				return
			}
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"role":"`+tt.wantRole+`"`)
			assert.Equal(t, "access_token=jwt; Path=/; HttpOnly", rec.Header().Get("Set-Cookie"))
			require.Len(t, accounts.logins, 1)
		})
	}
}

func TestLoginMapsUpstreamFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"wrong password", &apiclient.APIError{Status: http.StatusUnauthorized}, http.StatusUnauthorized},
		{"rejected body", &apiclient.APIError{Status: http.StatusBadRequest}, http.StatusUnauthorized},
		{"api down", &apiclient.APIError{Status: http.StatusInternalServerError}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&fakeAccounts{err: tt.err}, validator.NewValidator())
			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/login",
				strings.NewReader(`{"login":"79991234567","password":"secret"}`)))
			assert.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Body.String(), msgLoginFailed)
		})
	}
}
