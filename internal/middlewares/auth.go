//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sbilibin2017/sport-together/internal/logger"
	"github.com/sbilibin2017/sport-together/internal/models"
)

// TokenExtractor pulls the session token out of a request.
type TokenExtractor interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// SessionResolver turns a session token into a live session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.Session, error)
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying the session.
func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by AuthMiddleware.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*models.Session)
	return s, ok && s != nil
}

// AuthMiddleware rejects requests without a valid session token and passes
// the resolved session to the next handler through the request context. The
// request logger is tagged with the session's user id.
func AuthMiddleware(tokens TokenExtractor, sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, err := tokens.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.FromContext(ctx).Infow("authorization failed", "err", err)
				unauthorized(w, "authorization required")
				return
			}

			session, err := sessions.ResolveSession(ctx, token)
			if err != nil {
				logger.FromContext(ctx).Infow("authorization failed", "err", err)
				unauthorized(w, "session expired, please log in again")
				return
			}

			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With("user_id", session.UserID))
			next.ServeHTTP(w, r.WithContext(WithSession(ctx, session)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
