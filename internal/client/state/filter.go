package state

import (
	"cmp"
	"slices"
	"strings"

	"studynotes/internal/study"
)

type Filter struct {
	Query          string // case-insensitive; matches title, content or any tag
	CategoryID     uint64 // 0 matches every category
	BookmarkedOnly bool
}

func (f Filter) match(n study.Note) bool {
	if f.CategoryID != 0 && n.CategoryID != f.CategoryID {
		return false
	}
	if f.BookmarkedOnly && !n.IsBookmarked {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	return slices.ContainsFunc(n.Tags, func(t string) bool {
		return strings.Contains(strings.ToLower(t), q)
	})
}

// FilterNotes returns the matching notes, most recently updated first. Ties
// fall back to the higher id. The input is not modified.
func FilterNotes(notes []study.Note, f Filter) []study.Note {
	out := make([]study.Note, 0, len(notes))
	for _, n := range notes {
		if f.match(n) {
			out = append(out, n)
		}
	}
	slices.SortStableFunc(out, func(a, b study.Note) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out
}
