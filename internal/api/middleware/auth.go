package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/khokhopl/league-console/internal/api/apierr"
	"github.com/khokhopl/league-console/internal/model"
	"github.com/khokhopl/league-console/internal/services/auth"
)

type contextKey string

const sessionContextKey contextKey = "session"

// Auth creates authentication middleware. Each authenticated request
// also refreshes the session's last-activity timestamp, which is what
// the idle timeout measures against.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return authMiddleware(authService, true)
}

// PassiveAuth validates the session without counting the request as
// user activity. The idle-state poll goes through this: watching the
// logout countdown must not keep the session alive.
func PassiveAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return authMiddleware(authService, false)
}

func authMiddleware(authService *auth.Service, touch bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}
			if touch {
				if touched, err := authService.Touch(r.Context(), token); err == nil {
					session = touched
				}
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// ExtractToken exposes token extraction to handlers that operate on
// the raw token (logout, session extension).
func ExtractToken(r *http.Request) string {
	return extractToken(r)
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionContextKey).(*model.Session)
	return session
}

// MustGetSession returns the session from the request context or panics
func MustGetSession(ctx context.Context) *model.Session {
	session := GetSession(ctx)
	if session == nil {
		panic("no session in context - auth middleware not applied?")
	}
	return session
}
