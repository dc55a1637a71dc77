package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Achrafml23/nutrition-app/pkg/jwtx"
	"github.com/Achrafml23/nutrition-app/pkg/slogx"
)

// AuthnMiddleware verifies the Authorization bearer token and injects the
// subject and claims into the request context. Verification failures are a
// uniform 401; the specific reason goes to the log only.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				if errors.Is(err, jwtx.ErrInvalidSignature) {
					log.Warn("access token signature rejected")
				}
				writeBearerError(w, "could not validate credentials")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750 challenge header plus the API's uniform error body. The body
// detail never varies with the failure reason.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"detail": "Could not validate credentials",
	})
}
