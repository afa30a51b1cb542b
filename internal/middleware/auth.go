package middleware

import (
	"net/http"

	"github.com/espace-client/backend/internal/auth"
)

// RequireToken is middleware that verifies the session-token cookie and
// injects the decoded claims into the request context. Expired, tampered
// and malformed tokens all collapse to one 401 response.
func RequireToken(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.TokenCookie)
			if err != nil {
				http.Error(w, `{"error":"Authorization token is missing or invalid."}`, http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				http.Error(w, `{"error":"Invalid or expired token."}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}
