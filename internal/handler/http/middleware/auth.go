package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hrsuite/hr-backend-go/internal/domain/auth"
	"github.com/hrsuite/hr-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a valid access token.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return requireTokenType("access")
}

// SSERequired rejects stream subscriptions without a valid short-lived
// SSE token. EventSource cannot set headers, so the token arrives as a
// query parameter and is verified separately from the access token.
func SSERequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return requireTokenType("sse")
}

func requireTokenType(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != expected {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
