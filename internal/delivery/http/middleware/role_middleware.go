package middleware

import (
	"net/http"

	"dental-lab-backend/internal/domain/entity"
	"dental-lab-backend/pkg/response"
)

// RequireRole passes when the user holds ANY of the allowed roles. Roles come
// from the access token claims set by AuthMiddleware.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUserIDFromContext(r.Context()); !ok {
				response.Unauthorized(w, "", response.CodeUnauthorized)
				return
			}

			if !HasRole(r.Context(), allowedRoles...) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireStaff allows lab staff and admins
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleStaff)(next)
}

// RequireDentist allows dentists, lab staff and admins
func RequireDentist(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleStaff, entity.RoleDentist)(next)
}
