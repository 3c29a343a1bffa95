package mw

import (
	"net/http"
	"time"

	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
	"github.com/tonypeanut/fullstack-notes-full/internal/session"
)

// RequireSession gates the protected views. No token redirects to the
// login view; a token that is expired or fails to decode clears the
// session first, then redirects. Decode failures and expiry are treated
// identically: fail closed, never open.
//
// The check runs on every request. Expiry between requests is only caught
// on the next one; there is no timer.
func RequireSession(sess *session.Store, now func() time.Time, log logger.Logger) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sess.Token()
			if token == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			if session.Expired(token, now()) {
				log.Info("session token expired or undecodable, forcing logout",
					logger.String("path", r.URL.Path))
				sess.Logout(r.Context())
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
