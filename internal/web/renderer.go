// Package web holds the server-rendered views. They are deliberately thin:
// render synchronizer state, collect form input, nothing else.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
	"github.com/tonypeanut/fullstack-notes-full/internal/syncer"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	tmpl   *template.Template
	logger logger.Logger
}

func NewRenderer(log logger.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, logger: log}, nil
}

// AuthData feeds the login and register views.
type AuthData struct {
	Error string // inline message, empty = no error
}

// NotesData feeds the notes view.
type NotesData struct {
	State     syncer.Snapshot
	FormError string // add-note form error, empty = no error
}

func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("failed to render template",
			logger.String("template", name),
			logger.Error(err))
	}
}
