package httphandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/ericfisherdev/marketplace/internal/domain/model"
	"github.com/ericfisherdev/marketplace/internal/domain/port/driven"
)

type ctxKey string

const ctxKeyClaims ctxKey = "marketplace_claims"

// WithClaims stores verified token claims in the context.
func WithClaims(ctx context.Context, claims model.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

// ClaimsFromContext returns the claims stored by the auth gate.
func ClaimsFromContext(ctx context.Context) (model.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims).(model.Claims)
	return claims, ok
}

// tokenErrorMessage maps verifier errors to client-facing messages.
func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, driven.ErrMissingToken):
		return "token is missing"
	case errors.Is(err, driven.ErrExpiredToken):
		return "token has expired"
	case errors.Is(err, driven.ErrMalformedToken):
		return "token is missing required claims"
	default:
		return "token is invalid"
	}
}

// requireAuth verifies the Authorization header and injects the claims into
// the request context. Any verification failure is a 401.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.verifier.Verify(r.Header.Get("Authorization"))
		if err != nil {
			h.logger.Debug("token rejected", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusUnauthorized, tokenErrorMessage(err))
			return
		}

		next(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

// requireRole wraps requireAuth and additionally rejects callers whose role
// differs from role with a 403.
func (h *Handler) requireRole(role model.Role, next http.HandlerFunc) http.HandlerFunc {
	return h.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		if claims.Role != role {
			writeError(w, http.StatusForbidden, "this action requires a "+string(role)+" account")
			return
		}

		next(w, r)
	})
}

// mustClaims returns the claims injected by requireAuth. Handlers registered
// behind the gate can rely on them being present.
func mustClaims(r *http.Request) model.Claims {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		panic("httphandler: handler registered without auth gate")
	}
	return claims
}
