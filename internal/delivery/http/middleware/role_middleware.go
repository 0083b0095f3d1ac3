package middleware

import (
	"net/http"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/pkg/response"
)

// RequireRole lets through users holding one of roles. It must run after
// Authenticate.
func RequireRole(roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

func RequireSuperadmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleSuperadmin)(next)
}
