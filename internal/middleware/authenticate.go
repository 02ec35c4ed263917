package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/marwan-kudus/jabar-onshop/internal/auth"
)

type ctxKey string

const ctxIdentity ctxKey = "identity"

// Authenticate resolves the bearer credential, if any, and stores the
// identity in the request context. Requests without a credential pass
// through unauthenticated; protected handlers decide what that means.
func Authenticate(authority auth.Authority, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := bearerToken(r)
			if credential == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := authority.Resolve(r.Context(), credential)
			if err != nil {
				logger.Printf("resolve credential: %v", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if id == nil {
				// stale token, treat as unauthenticated
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxIdentity, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity returns the resolved identity, or nil when the request is
// unauthenticated.
func GetIdentity(ctx context.Context) *auth.Identity {
	if v := ctx.Value(ctxIdentity); v != nil {
		if id, ok := v.(*auth.Identity); ok {
			return id
		}
	}
	return nil
}

// WithIdentity injects an identity into the context. Used by tests and by
// in-process callers that already know who the user is.
func WithIdentity(ctx context.Context, id *auth.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, prefix))
}
