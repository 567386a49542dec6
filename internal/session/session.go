// Package session issues the anonymous cookie that keys per-visitor state.
package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const CookieName = "pmt_session"

type ctxKey string

const sessionContextKey ctxKey = "pmt.session"

func withSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionContextKey, id)
}

func FromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(sessionContextKey).(string)
	return v, ok && v != ""
}

// Resolve is the resolver handed to domain handlers.
func Resolve(r *http.Request) string {
	id, _ := FromContext(r.Context())
	return id
}

// Middleware reuses a valid session cookie or issues a new one. Cookie
// values are keyed by their canonical uuid form. Every request touches the
// session in store, which may be nil.
func Middleware(secure bool, store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(CookieName); err == nil {
				if u, perr := uuid.Parse(strings.TrimSpace(c.Value)); perr == nil {
					id = u.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			if store != nil {
				store.Touch(id)
			}
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), id)))
		})
	}
}
