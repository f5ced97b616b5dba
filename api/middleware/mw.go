package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/seva-sangam/donation-services/internal/authn"
)

type contextKey string

const ClaimsKey contextKey = "claims"
const TokenKey contextKey = "token"

// JWTMiddleware parses and verifies the bearer token and adds the claims to
// the request context. Requests without a valid token are rejected.
func JWTMiddleware(verifier *authn.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				logger := zerolog.Ctx(r.Context()).With().
					Str("handler", "JWTMiddleware").Logger()

				authHeader := r.Header.Get("Authorization")
				if authHeader == "" {
					logger.Debug().Msg("authorization header missing")
					http.Error(w, "no token provided", http.StatusUnauthorized)
					return
				}

				token := strings.TrimPrefix(authHeader, "Bearer ")
				if token == authHeader {
					logger.Error().Msg("invalid token format")
					http.Error(w, "invalid token format", http.StatusUnauthorized)
					return
				}

				claims, err := verifier.ParseClaims(token)
				if err != nil {
					logger.Error().Err(err).Msg("invalid bearer jwt token")
					http.Error(w, "invalid token", http.StatusUnauthorized)
					return
				}

				ctx := context.WithValue(r.Context(), TokenKey, token)
				ctx = context.WithValue(ctx, ClaimsKey, claims)

				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

// OptionalJWTMiddleware adds claims to the context when a valid bearer token
// is present and otherwise lets the request through unauthenticated. Listing
// routes predate the mandal scoping and must keep serving unauthenticated
// callers the unscoped view; an invalid token degrades the same way.
func OptionalJWTMiddleware(verifier *authn.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				authHeader := r.Header.Get("Authorization")
				if authHeader == "" {
					next.ServeHTTP(w, r)
					return
				}

				token := strings.TrimPrefix(authHeader, "Bearer ")
				claims, err := verifier.ParseClaims(token)
				if err != nil {
					zerolog.Ctx(r.Context()).Debug().Err(err).
						Msg("ignoring invalid token on optional-auth route")
					next.ServeHTTP(w, r)
					return
				}

				ctx := context.WithValue(r.Context(), TokenKey, token)
				ctx = context.WithValue(ctx, ClaimsKey, claims)

				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

// WithLogger adds a logger to the context and logs request information.
func WithLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			logger := log.With().
				Str("host", r.Host).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Str("remote_addr", r.RemoteAddr).
				Time("timestamp", time.Now()).
				Logger()

			ctx := logger.WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}
