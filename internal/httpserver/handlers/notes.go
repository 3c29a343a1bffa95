package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tonypeanut/fullstack-notes-full/internal/httpserver/deps"
	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
	"github.com/tonypeanut/fullstack-notes-full/internal/syncer"
	"github.com/tonypeanut/fullstack-notes-full/internal/web"
)

// NotesPage is the protected notes view. Every visit re-syncs from the
// server: plain visits reload everything (clearing any filter), visits
// with ?category= load that category's notes only. Sync failures degrade
// silently, the view renders whatever the mirror holds.
func NotesPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if name := r.URL.Query().Get("category"); name != "" {
			if err := d.Syncer.FilterByCategory(ctx, name); err != nil {
				d.Logger.Error("category filter failed", logger.String("category", name), logger.Error(err))
			}
		} else {
			if err := d.Syncer.ResetFilter(ctx); err != nil {
				d.Logger.Error("notes sync failed", logger.Error(err))
			}
		}

		d.Renderer.Render(w, http.StatusOK, "notes.html", web.NotesData{State: d.Syncer.Snapshot()})
	}
}

// NoteCreate adds a note with the selected categories. An empty title is
// rejected here without touching the network, matching the add form's
// inline validation.
func NoteCreate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		title := r.FormValue("title")
		content := r.FormValue("content")
		categories := r.Form["categories"]

		if err := d.Syncer.AddNote(r.Context(), title, content, categories); err != nil {
			msg := "Failed to add note"
			if errors.Is(err, syncer.ErrEmptyTitle) {
				msg = "Title is required!"
			}
			d.Renderer.Render(w, http.StatusUnprocessableEntity, "notes.html",
				web.NotesData{State: d.Syncer.Snapshot(), FormError: msg})
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// NoteEdit updates a note's title and content.
func NoteEdit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := noteID(w, r, d)
		if !ok {
			return
		}

		if err := d.Syncer.EditNote(r.Context(), id, r.FormValue("title"), r.FormValue("content")); err != nil {
			d.Renderer.Render(w, http.StatusUnprocessableEntity, "notes.html",
				web.NotesData{State: d.Syncer.Snapshot(), FormError: "Failed to update note"})
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// NoteArchive flips a note between active and archived. The form carries
// the note's current state so the handler knows which direction to go.
func NoteArchive(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := noteID(w, r, d)
		if !ok {
			return
		}
		currentlyArchived := r.FormValue("archived") == "true"

		// Failures no-op on local state; the redirect re-renders as is.
		_ = d.Syncer.ToggleArchive(r.Context(), id, currentlyArchived)

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// NoteDelete removes a note.
func NoteDelete(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := noteID(w, r, d)
		if !ok {
			return
		}

		_ = d.Syncer.DeleteNote(r.Context(), id)

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// NoteCategoryToggle attaches or detaches one category on a note.
func NoteCategoryToggle(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := noteID(w, r, d)
		if !ok {
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		add := r.FormValue("action") == "add"

		_ = d.Syncer.ToggleCategory(r.Context(), id, name, add)

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func noteID(w http.ResponseWriter, r *http.Request, d deps.Deps) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		NotFound(d).ServeHTTP(w, r)
		return 0, false
	}
	return id, true
}
