package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/tonypeanut/fullstack-notes-full/internal/httpserver/deps"
	"github.com/tonypeanut/fullstack-notes-full/internal/httpserver/handlers"
	"github.com/tonypeanut/fullstack-notes-full/internal/httpserver/mw"
)

func init() { Register(registerNotes) }

// registerNotes wires the protected views behind the session guard.
func registerNotes(r chi.Router, d deps.Deps) {
	r.Group(func(r chi.Router) {
		r.Use(mw.RequireSession(d.Session, d.TimeNow, d.Logger))

		r.Get("/", handlers.NotesPage(d))
		r.Post("/notes", handlers.NoteCreate(d))
		r.Post("/notes/{id}/edit", handlers.NoteEdit(d))
		r.Post("/notes/{id}/archive", handlers.NoteArchive(d))
		r.Post("/notes/{id}/delete", handlers.NoteDelete(d))
		r.Post("/notes/{id}/categories", handlers.NoteCategoryToggle(d))
	})
}
