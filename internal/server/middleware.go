package server

import (
	"context"
	"net/http"
)

type ctxKey int

const ctxKeySession ctxKey = iota

const sessionCookieName = "geopersona_session"

// sessionMiddleware resolves the caller's session from its cookie, creating
// one (and setting the cookie) on first contact.
func sessionMiddleware(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *Session
			if cookie, err := r.Cookie(sessionCookieName); err == nil {
				sess, _ = sessions.Get(cookie.Value)
			}
			if sess == nil {
				sess = sessions.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookieName,
					Value:    sess.Token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFrom(r *http.Request) *Session {
	return r.Context().Value(ctxKeySession).(*Session)
}
