package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/api/respond"
)

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored by Middleware, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// Middleware rejects requests the authorizer does not accept.
// A rejected credential is 401; an unreachable verifier is 503.
func Middleware(a Authorizer, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractToken(r)
			if err != nil && !errors.Is(err, ErrMissingToken) {
				respond.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}

			p, err := a.Authorize(r.Context(), token)
			switch {
			case err == nil:
			case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidToken):
				respond.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			default:
				log.Warn().Err(err).Msg("authorization backend unavailable")
				respond.WriteError(w, http.StatusServiceUnavailable, "authorization unavailable")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}
