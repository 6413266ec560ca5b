package providers

import (
	"blueghost/internal/models"
	"context"
	"net/http"
	"strings"
)

type identityKey struct{}

// SessionVerifier turns a session cookie value back into an identity.
type SessionVerifier interface {
	Verify(token string) (models.Identity, error)
}

func WithIdentity(ctx context.Context, id models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(models.Identity)
	return id, ok
}

// SessionMiddleware blocks everything below the login gate. Browsers are sent
// to the login form, API callers get 401.
func SessionMiddleware(verifier SessionVerifier, cookieName string, logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cookieName)
		if err == nil && cookie.Value != "" {
			id, err := verifier.Verify(cookie.Value)
			if err == nil {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
				return
			}
			logger.Debugf(TypeAuth, "Rejected session cookie on %s: %s", r.URL.Path, err)
		}

		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"login required"}`))
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
}
