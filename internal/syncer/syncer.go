package syncer

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/tonypeanut/fullstack-notes-full/internal/api"
	"github.com/tonypeanut/fullstack-notes-full/internal/domain"
	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
)

// ErrEmptyTitle rejects note creation before any network call is made.
var ErrEmptyTitle = errors.New("title must not be empty")

// Syncer is the client-side state container for notes and categories. It
// mirrors the server: every mutation is a request/response round trip and
// local state only changes from server responses, never optimistically.
// There is no rollback because there is nothing to roll back.
//
// The two note collections partition the note set: a note id never lives
// in both at once, and archive flips move the note atomically under the
// lock.
type Syncer struct {
	mu     sync.RWMutex
	api    *api.Client
	logger logger.Logger

	notes      []domain.Note // active
	archived   []domain.Note
	categories []domain.Category

	loading          bool
	selectedCategory string // "" = no filter
}

// Snapshot is a point-in-time copy of the synchronizer state for rendering.
type Snapshot struct {
	Notes            []domain.Note
	Archived         []domain.Note
	Categories       []domain.Category
	Loading          bool
	SelectedCategory string
}

func New(client *api.Client, log logger.Logger) *Syncer {
	return &Syncer{
		api:    client,
		logger: log,
	}
}

// FetchAll reloads active notes, archived notes and categories from the
// server and replaces all three collections wholesale. The three calls run
// sequentially; the first failure aborts and leaves local state untouched.
func (s *Syncer) FetchAll(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	active, err := s.api.ActiveNotes(ctx)
	if err != nil {
		s.logger.Error("failed to fetch active notes", logger.Error(err))
		return err
	}

	archived, err := s.api.ArchivedNotes(ctx)
	if err != nil {
		s.logger.Error("failed to fetch archived notes", logger.Error(err))
		return err
	}

	categories, err := s.api.Categories(ctx)
	if err != nil {
		s.logger.Error("failed to fetch categories", logger.Error(err))
		return err
	}

	s.mu.Lock()
	s.notes = active
	s.archived = archived
	s.categories = categories
	s.mu.Unlock()

	s.logger.Debug("full sync complete",
		logger.Int("active", len(active)),
		logger.Int("archived", len(archived)),
		logger.Int("categories", len(categories)))
	return nil
}

// AddNote creates a note and appends it to the active collection, then
// attaches the requested categories one by one. The attaches are best
// effort: a failed attach is logged and skipped, the note stays created.
// An empty title never reaches the network.
func (s *Syncer) AddNote(ctx context.Context, title, content string, categoryNames []string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}

	note, err := s.api.CreateNote(ctx, title, content)
	if err != nil {
		s.logger.Error("failed to create note", logger.Error(err))
		return err
	}

	s.mu.Lock()
	s.notes = append(s.notes, *note)
	s.mu.Unlock()

	for _, name := range categoryNames {
		if err := s.ToggleCategory(ctx, note.ID, name, true); err != nil {
			s.logger.Warn("failed to attach category to new note",
				logger.Int("note_id", note.ID),
				logger.String("category", name),
				logger.Error(err))
		}
	}
	return nil
}

// EditNote updates title and content. The response decides which
// collection the note is replaced in, keyed on its is_archived flag.
func (s *Syncer) EditNote(ctx context.Context, id int, title, content string) error {
	updated, err := s.api.UpdateNote(ctx, id, title, content)
	if err != nil {
		s.logger.Error("failed to edit note", logger.Int("note_id", id), logger.Error(err))
		return err
	}

	s.mu.Lock()
	s.replaceLocked(*updated)
	s.mu.Unlock()
	return nil
}

// ToggleArchive flips a note between the active and archived collections.
// Removal is keyed on the note's prior state, the response object is then
// appended to the destination, all under one lock so the partition
// invariant holds at every observable instant.
func (s *Syncer) ToggleArchive(ctx context.Context, id int, currentlyArchived bool) error {
	var (
		updated *domain.Note
		err     error
	)
	if currentlyArchived {
		updated, err = s.api.UnarchiveNote(ctx, id)
	} else {
		updated, err = s.api.ArchiveNote(ctx, id)
	}
	if err != nil {
		s.logger.Error("failed to toggle archive",
			logger.Int("note_id", id),
			logger.Bool("currently_archived", currentlyArchived),
			logger.Error(err))
		return err
	}

	s.mu.Lock()
	if currentlyArchived {
		s.archived = domain.RemoveByID(s.archived, id)
		s.notes = append(s.notes, *updated)
	} else {
		s.notes = domain.RemoveByID(s.notes, id)
		s.archived = append(s.archived, *updated)
	}
	s.mu.Unlock()
	return nil
}

// DeleteNote removes the note server-side, then drops its id from both
// collections unconditionally. Removing from both works regardless of
// which one currently holds it.
func (s *Syncer) DeleteNote(ctx context.Context, id int) error {
	if err := s.api.DeleteNote(ctx, id); err != nil {
		s.logger.Error("failed to delete note", logger.Int("note_id", id), logger.Error(err))
		return err
	}

	s.mu.Lock()
	s.notes = domain.RemoveByID(s.notes, id)
	s.archived = domain.RemoveByID(s.archived, id)
	s.mu.Unlock()
	return nil
}

// ToggleCategory attaches (add=true) or detaches a category on a note,
// then re-fetches the flat category list. The re-fetch runs whether or not
// the attach succeeded: it picks up implicitly created categories as well
// as ones orphaned by the detach, and keeping it unconditional is cheaper
// than tracking reference counts locally.
func (s *Syncer) ToggleCategory(ctx context.Context, id int, name string, add bool) error {
	var (
		updated *domain.Note
		err     error
	)
	if add {
		updated, err = s.api.AttachCategory(ctx, id, name)
	} else {
		updated, err = s.api.DetachCategory(ctx, id, name)
	}
	if err != nil {
		s.logger.Error("failed to toggle category",
			logger.Int("note_id", id),
			logger.String("category", name),
			logger.Bool("add", add),
			logger.Error(err))
	} else {
		s.mu.Lock()
		s.replaceLocked(*updated)
		s.mu.Unlock()
	}

	categories, catErr := s.api.Categories(ctx)
	if catErr != nil {
		s.logger.Error("failed to refresh categories", logger.Error(catErr))
	} else {
		s.mu.Lock()
		s.categories = categories
		s.mu.Unlock()
	}

	return err
}

// FilterByCategory fetches the mixed note set for one category and
// replaces both collections with its partition, overwriting prior
// contents entirely.
func (s *Syncer) FilterByCategory(ctx context.Context, name string) error {
	notes, err := s.api.NotesByCategory(ctx, name)
	if err != nil {
		s.logger.Error("failed to filter by category",
			logger.String("category", name),
			logger.Error(err))
		return err
	}

	active, archived := domain.Partition(notes)

	s.mu.Lock()
	s.notes = active
	s.archived = archived
	s.selectedCategory = name
	s.mu.Unlock()
	return nil
}

// ResetFilter clears the category filter and reloads everything.
func (s *Syncer) ResetFilter(ctx context.Context) error {
	s.mu.Lock()
	s.selectedCategory = ""
	s.mu.Unlock()

	return s.FetchAll(ctx)
}

// Clear drops all local state. Called on logout.
func (s *Syncer) Clear() {
	s.mu.Lock()
	s.notes = nil
	s.archived = nil
	s.categories = nil
	s.selectedCategory = ""
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state for rendering.
func (s *Syncer) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Notes:            make([]domain.Note, len(s.notes)),
		Archived:         make([]domain.Note, len(s.archived)),
		Categories:       make([]domain.Category, len(s.categories)),
		Loading:          s.loading,
		SelectedCategory: s.selectedCategory,
	}
	copy(snap.Notes, s.notes)
	copy(snap.Archived, s.archived)
	copy(snap.Categories, s.categories)
	return snap
}

// replaceLocked swaps a note for its updated version in whichever
// collection matches the response's is_archived flag. Caller holds the lock.
func (s *Syncer) replaceLocked(updated domain.Note) {
	if updated.IsArchived {
		domain.ReplaceByID(s.archived, updated)
	} else {
		domain.ReplaceByID(s.notes, updated)
	}
}

func (s *Syncer) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
