package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/tonypeanut/fullstack-notes-full/internal/httpserver/deps"
	"github.com/tonypeanut/fullstack-notes-full/internal/httpserver/handlers"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	r.Get("/login", handlers.LoginPage(d))
	r.Post("/login", handlers.LoginSubmit(d))
	r.Get("/register", handlers.RegisterPage(d))
	r.Post("/register", handlers.RegisterSubmit(d))
	r.Post("/logout", handlers.LogoutSubmit(d))
}
