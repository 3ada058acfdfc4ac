package middleware

import (
	"context"
	"net/http"
	"strings"

	"tutorhub/pkg/logger"
	"tutorhub/pkg/model"
	"tutorhub/pkg/session"
)

const sessionKey contextKey = "session"

// Authenticate resolves the bearer token into a Session and stores it in the
// request context. Requests without a token pass through unauthenticated;
// handlers that need a caller use RequireSession. A present-but-invalid token
// is rejected outright rather than treated as anonymous.
func Authenticate(mgr *session.Manager, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := mgr.Parse(token)
			if err != nil {
				log.Warn("Rejected invalid session token",
					"request_id", requestID(r),
					"path", r.URL.Path,
					"error", err,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Invalid or expired session"}`))
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the authenticated caller, if any.
func SessionFromContext(ctx context.Context) (*model.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*model.Session)
	return sess, ok
}

// ContextWithSession attaches a session directly, bypassing token parsing.
// Used by handler tests.
func ContextWithSession(ctx context.Context, sess *model.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
