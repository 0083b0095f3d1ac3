package middleware

import (
	"context"
	"net/http"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/infrastructure/apiclient"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/jwt"
	"clinic-portal/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const roleKey contextKey = "role"

type AuthMiddleware struct {
	parser     usecase.TokenParser
	accounts   usecase.AccountUsecase
	cookieName string
	log        *logrus.Logger
}

func NewAuthMiddleware(parser usecase.TokenParser, accounts usecase.AccountUsecase, cookieName string, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		parser:     parser,
		accounts:   accounts,
		cookieName: cookieName,
		log:        log,
	}
}

// Authenticate requires the session cookie. The user id, the raw token for
// upstream calls and the resolved role are put in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, ok := m.session(r)
		if !ok {
			response.Unauthorized(w, "Session cookie is missing or invalid")
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional lets anonymous requests through and only adds a session when a
// valid one is present.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ctx, ok := m.session(r); ok {
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) session(r *http.Request) (context.Context, bool) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	claims, err := m.parser.Parse(cookie.Value)
	if err != nil {
		m.log.Debugf("Rejected session token: %v", err)
		return nil, false
	}

	ctx := jwt.WithUserID(r.Context(), claims.UserID)
	ctx = apiclient.WithSession(ctx, cookie.Value)

	role, err := m.accounts.ResolveRole(ctx, claims.UserID)
	if err != nil {
		m.log.Warnf("Failed to resolve role of user %d: %+v", claims.UserID, err)
		return nil, false
	}
	return context.WithValue(ctx, roleKey, role), true
}

// RoleFromContext returns the role Authenticate resolved.
func RoleFromContext(ctx context.Context) (entity.Role, bool) {
	role, ok := ctx.Value(roleKey).(entity.Role)
	return role, ok
}
