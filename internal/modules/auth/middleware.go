package auth

import (
	"net/http"
	"strings"
)

// Middleware resolves the caller's identity from the Authorization header.
// Requests without a token, or with one that fails verification, continue
// as anonymous; role enforcement happens in the services.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header != "" {
				tokenString := strings.TrimPrefix(header, "Bearer ")
				if ident, err := ParseToken(tokenString, secret); err == nil {
					r = r.WithContext(WithIdentity(r.Context(), ident))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
