package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/clinicore/delegation/internal/domain"
	"github.com/clinicore/delegation/pkg/ctxutil"
)

type grantValidator interface {
	Validate(ctx context.Context, token string) (domain.Grant, error)
}

// DelegationAuth returns middleware that requires a valid delegated bearer
// token. The resolved grant is attached to the request context. Requests
// without a token or with a token that fails live revocation checks get 401.
func DelegationAuth(validator grantValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			grant, err := validator.Validate(r.Context(), token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithGrant(r.Context(), grant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
