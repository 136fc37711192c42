package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	SessionCookie = "nhn_session"
	SessionHeader = "X-Session-ID"
)

type ctxKey int

const sessionIDKey ctxKey = iota

// SessionMiddleware resolves the visitor's session id from the cookie, then
// the X-Session-ID header, and issues a new one when neither holds a valid
// UUID. The id is echoed back in both the cookie and the header.
func SessionMiddleware(ttl time.Duration, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := sessionIDFromRequest(r)
			if id == "" {
				id = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(ttl.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(SessionHeader, id)

			ctx := context.WithValue(r.Context(), sessionIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionIDFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && validSessionID(c.Value) {
		return c.Value
	}
	if h := r.Header.Get(SessionHeader); validSessionID(h) {
		return h
	}
	return ""
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func getSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
