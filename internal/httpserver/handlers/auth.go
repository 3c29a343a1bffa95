package handlers

import (
	"errors"
	"net/http"

	"github.com/tonypeanut/fullstack-notes-full/internal/api"
	"github.com/tonypeanut/fullstack-notes-full/internal/httpserver/deps"
	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
	"github.com/tonypeanut/fullstack-notes-full/internal/web"
)

// tryAgainMessage is shown for transport failures on the auth forms. All
// other operations degrade silently with a log line only.
const tryAgainMessage = "An error occurred. Please try again."

// LoginPage renders the login form. An already authenticated visitor is
// sent straight to the notes view.
func LoginPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Session.Token() != "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		d.Renderer.Render(w, http.StatusOK, "login.html", web.AuthData{})
	}
}

// LoginSubmit exchanges the submitted credentials for a token and opens
// the session. Bad credentials re-render the form with the server's
// message; transport failures get a generic one. The form stays editable
// either way.
func LoginSubmit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.FormValue("username")
		password := r.FormValue("password")

		token, err := d.API.Login(r.Context(), username, password)
		if err != nil {
			var apiErr *api.Error
			if errors.As(err, &apiErr) {
				d.Renderer.Render(w, http.StatusUnauthorized, "login.html", web.AuthData{Error: apiErr.Message})
				return
			}
			d.Logger.Error("login request failed", logger.Error(err))
			d.Renderer.Render(w, http.StatusBadGateway, "login.html", web.AuthData{Error: tryAgainMessage})
			return
		}

		d.Session.Login(r.Context(), token)

		// Populate the mirror before the browser lands on the notes view.
		if err := d.Syncer.FetchAll(r.Context()); err != nil {
			d.Logger.Error("initial sync after login failed", logger.Error(err))
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// RegisterPage renders the registration form.
func RegisterPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Session.Token() != "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		d.Renderer.Render(w, http.StatusOK, "register.html", web.AuthData{})
	}
}

// RegisterSubmit creates an account. The password match check happens
// here, before any network call.
func RegisterSubmit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.FormValue("username")
		password := r.FormValue("password")
		confirm := r.FormValue("confirm_password")

		if password != confirm {
			d.Renderer.Render(w, http.StatusUnprocessableEntity, "register.html",
				web.AuthData{Error: "Passwords do not match"})
			return
		}

		if err := d.API.Register(r.Context(), username, password); err != nil {
			var apiErr *api.Error
			if errors.As(err, &apiErr) {
				d.Renderer.Render(w, http.StatusBadRequest, "register.html", web.AuthData{Error: apiErr.Message})
				return
			}
			d.Logger.Error("register request failed", logger.Error(err))
			d.Renderer.Render(w, http.StatusBadGateway, "register.html", web.AuthData{Error: tryAgainMessage})
			return
		}

		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// LogoutSubmit closes the session and drops the local mirror.
func LogoutSubmit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Session.Logout(r.Context())
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
