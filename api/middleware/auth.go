package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/knagase/wardrobe-api/api/responses"
	pkgAuth "github.com/knagase/wardrobe-api/pkg/auth"
	"github.com/knagase/wardrobe-api/pkg/config"
	pkgerrors "github.com/knagase/wardrobe-api/pkg/errors"
	"github.com/knagase/wardrobe-api/pkg/logger"
)

// Auth validates a bearer access token and seeds the request context with the
// authenticated identity. The header must be exactly "Bearer <token>"; any
// other shape is rejected before the handler runs.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			// Exactly one space between scheme and token; anything else is
			// malformed, including tabs or doubled separators.
			scheme, token, found := strings.Cut(raw, " ")
			if !found || scheme != "Bearer" || token == "" || strings.ContainsAny(token, " \t") {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "malformed authorization header"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID.String())
			ctx = context.WithValue(ctx, ctxEmail, claims.Email)

			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UserID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
