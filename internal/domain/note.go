package domain

// Note is the canonical client-side representation of a note as returned
// by the remote API. The server owns all ids and the archived flag; the
// client never invents either.
//
// A note lives in exactly one of the two local collections (active or
// archived), mirroring IsArchived.
type Note struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	IsArchived bool       `json:"is_archived"`
	Categories []Category `json:"categories"`
}

// Category is created implicitly server-side when first attached to a note.
// Names are unique within the account.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// HasCategory reports whether the note carries a category with the given name.
func (n Note) HasCategory(name string) bool {
	for _, c := range n.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Partition splits a mixed set of notes into active and archived slices,
// preserving input order. Used when the category filter endpoint returns
// both kinds in one response.
func Partition(notes []Note) (active, archived []Note) {
	for _, n := range notes {
		if n.IsArchived {
			archived = append(archived, n)
		} else {
			active = append(active, n)
		}
	}
	return active, archived
}

// RemoveByID returns notes without the note carrying id. Order is preserved.
func RemoveByID(notes []Note, id int) []Note {
	out := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

// ReplaceByID swaps the note with a matching id for updated, in place.
// Returns true when a note was replaced. A miss leaves the slice untouched.
func ReplaceByID(notes []Note, updated Note) bool {
	for i := range notes {
		if notes[i].ID == updated.ID {
			notes[i] = updated
			return true
		}
	}
	return false
}

// ContainsID reports whether any note in the slice carries id.
func ContainsID(notes []Note, id int) bool {
	for _, n := range notes {
		if n.ID == id {
			return true
		}
	}
	return false
}
