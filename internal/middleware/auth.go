package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/lucas-hallgren/automatizador-backend/internal/auth"
	"github.com/lucas-hallgren/automatizador-backend/internal/session"
)

// unexported, collision-proof context key
type identityContextKeyType struct{}

var identityKey = identityContextKeyType{}

// IdentityFromContext extracts the authenticated identity from context.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok
}

// AuthMiddleware gates protected routes on the presence of an identity
// in the current session. It does not check token liveness against the
// provider.
type AuthMiddleware struct {
	Store      session.Store
	Serializer auth.Serializer
}

func NewAuthMiddleware(store session.Store, serializer auth.Serializer) *AuthMiddleware {
	return &AuthMiddleware{
		Store:      store,
		Serializer: serializer,
	}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read session cookie
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			rejectUnauthorized(w)
			return
		}

		sessionID := cookie.Value

		// 2. Load session
		sess, err := a.Store.Get(r.Context(), sessionID)
		if err != nil || sess == nil {
			rejectUnauthorized(w)
			return
		}

		// 3. Enforce server-side expiry
		if time.Now().After(sess.ExpiresAt) {
			_ = a.Store.Delete(r.Context(), sessionID)
			rejectUnauthorized(w)
			return
		}

		// 4. An anonymous session carries no identity payload
		identity, err := a.Serializer.Deserialize(sess.Identity)
		if err != nil {
			rejectUnauthorized(w)
			return
		}

		// 5. Attach identity to context and continue
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func rejectUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"unauthorized"}`))
}
