package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrsuite/hr-backend-go/internal/domain/user"
	"github.com/hrsuite/hr-backend-go/internal/handler/http/response"
)

// RequireAdminRH restricts a route to the ADMIN_RH role
func RequireAdminRH(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || role != user.RoleAdminRH {
			response.HandleError(w, user.ErrAdminRHAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManager restricts a route to MANAGER or ADMIN_RH
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || (role != user.RoleManager && role != user.RoleAdminRH) {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePermission restricts a route to roles granted the permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := roleFromContext(r)
			if !ok || !user.HasPermission(role, permission) {
				response.HandleError(w, user.ErrAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func roleFromContext(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}

	return user.Role(roleStr), true
}
