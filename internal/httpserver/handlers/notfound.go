package handlers

import (
	"net/http"

	"github.com/tonypeanut/fullstack-notes-full/internal/httpserver/deps"
)

// NotFound renders the 404 view for unknown paths.
func NotFound(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Renderer.Render(w, http.StatusNotFound, "notfound.html", nil)
	}
}
