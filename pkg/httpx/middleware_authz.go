package httpx

import (
	"net/http"
)

// ForbiddenMessage is the body message of every role gate rejection.
const ForbiddenMessage = "Not enough permissions to access this route"

// RequireRole admits the request only when the access token role is in
// allowed. Roles are compared as exact values; there is no hierarchy. Must
// run after AuthnMiddleware.
func RequireRole[R ~string](allowed ...R) Middleware {
	want := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		want[string(role)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := AccessClaimsFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing access token")
				return
			}
			if _, ok := want[claims.Role]; !ok {
				w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
				WriteError(w, http.StatusForbidden, ErrorTypeForbidden, ForbiddenMessage)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
