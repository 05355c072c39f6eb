package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
)

type ctxKey string

const callerKey ctxKey = "caller"

// caller is the authenticated identity attached by authGuard.
type caller struct {
	ID string
}

func callerFromContext(ctx context.Context) (caller, bool) {
	c, ok := ctx.Value(callerKey).(caller)
	return c, ok && c.ID != ""
}

// authGuard admits requests carrying a valid token and rejects the rest
// with 401 without calling next.
func (rt *Router) authGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := tokenFromRequest(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, rt.jwtSecret)
		if err != nil {
			rt.logger.Warn(r.Context(), "token rejected", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), callerKey, caller{ID: userID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenFromRequest prefers the auth-token header and falls back to a
// bearer Authorization header.
func tokenFromRequest(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(common.AuthTokenHeaderName)); t != "" {
		return t
	}
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
