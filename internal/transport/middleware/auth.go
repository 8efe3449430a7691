package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/ideascore-backend/internal/auth"
	"github.com/heartmarshall/ideascore-backend/pkg/ctxutil"
)

type tokenValidator interface {
	Validate(token string) (auth.Claims, error)
}

// Auth verifies a bearer token when one is present and stores the account ID
// and role in the request context. Requests without a token pass through
// anonymously; RequireAuth rejects them where identity is needed.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := validator.Validate(token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or expired token")
				return
			}
			ctx := ctxutil.WithAccountID(r.Context(), claims.AccountID)
			ctx = ctxutil.WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
