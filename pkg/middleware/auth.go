package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront-admin/internal/apperr"
	"storefront-admin/internal/data/entity"
	"storefront-admin/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator resolves a session token to the actor behind it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (entity.Actor, error)
}

// AuthSession middleware untuk validasi session token UUID. Role checks are
// left to the services; this only establishes who is calling.
func AuthSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return session(auth, logger, true)
}

// OptionalSession lets requests without an Authorization header through as
// guests. A header that is present must still carry a valid session.
func OptionalSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return session(auth, logger, false)
}

func session(auth Authenticator, logger *zap.Logger, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if required {
					utils.ResponseUnauthorized(w, "Missing authorization token")
					return
				}
				ctx := utils.SetActorContext(r.Context(), entity.GuestActor())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			// Find valid session
			actor, err := auth.Authenticate(r.Context(), token)
			if errors.Is(err, apperr.ErrUnauthenticated) {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			// Set context dengan actor DAN token
			ctx := utils.SetActorContext(r.Context(), actor)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
