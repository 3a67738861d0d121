package state

import (
	"slices"

	"studynotes/internal/study"
)

type Kind string

const (
	KindSetView             Kind = "set-view"
	KindSetSelectedCategory Kind = "set-selected-category"
	KindSetSelectedNote     Kind = "set-selected-note"
	KindLoadCategories      Kind = "load-categories"
	KindAddCategory         Kind = "add-category"
	KindUpdateCategory      Kind = "update-category"
	KindRemoveCategory      Kind = "remove-category"
	KindLoadNotes           Kind = "load-notes"
	KindAddNote             Kind = "add-note"
	KindUpdateNote          Kind = "update-note"
	KindDeleteNote          Kind = "delete-note"
	KindToggleBookmarkLocal Kind = "toggle-bookmark-local"
	KindLogActivity         Kind = "log-activity"
)

// Action is one state transition request. Payload types per kind:
//
//	set-view                  ViewMode
//	set-selected-category     uint64 (0 clears)
//	set-selected-note         uint64 (0 clears)
//	load-categories           []study.Category
//	add-category              study.Category
//	update-category           study.Category
//	remove-category           uint64
//	load-notes                []study.Note
//	add-note                  study.Note
//	update-note               study.Note
//	delete-note               uint64
//	toggle-bookmark-local     uint64
//	log-activity              Activity
type Action struct {
	Kind    Kind
	Payload any
}

func SetView(v ViewMode) Action { return Action{KindSetView, v} }

func SelectCategory(id uint64) Action { return Action{KindSetSelectedCategory, id} }

func SelectNote(id uint64) Action { return Action{KindSetSelectedNote, id} }

func LoadCategories(cs []study.Category) Action { return Action{KindLoadCategories, cs} }

func AddCategory(c study.Category) Action { return Action{KindAddCategory, c} }

func UpdateCategory(c study.Category) Action { return Action{KindUpdateCategory, c} }

func RemoveCategory(id uint64) Action { return Action{KindRemoveCategory, id} }

func LoadNotes(ns []study.Note) Action { return Action{KindLoadNotes, ns} }

func AddNote(n study.Note) Action { return Action{KindAddNote, n} }

func UpdateNote(n study.Note) Action { return Action{KindUpdateNote, n} }

func DeleteNote(id uint64) Action { return Action{KindDeleteNote, id} }

func ToggleBookmarkLocal(id uint64) Action { return Action{KindToggleBookmarkLocal, id} }

func LogActivity(a Activity) Action { return Action{KindLogActivity, a} }

// Reduce returns the state that results from applying a to s. It never
// mutates s. Unknown kinds, and known kinds carrying a payload of the wrong
// type, leave the state unchanged.
func Reduce(s State, a Action) State {
	switch a.Kind {
	case KindSetView:
		if v, ok := a.Payload.(ViewMode); ok && v.Valid() {
			s.View = v
		}

	case KindSetSelectedCategory:
		if id, ok := a.Payload.(uint64); ok {
			s.SelectedCategoryID = id
		}

	case KindSetSelectedNote:
		if id, ok := a.Payload.(uint64); ok {
			s.SelectedNoteID = id
		}

	case KindLoadCategories:
		if cs, ok := a.Payload.([]study.Category); ok {
			s.Categories = cloneOrEmpty(cs)
		}

	case KindAddCategory:
		if c, ok := a.Payload.(study.Category); ok {
			s.Categories = append(slices.Clip(s.Categories), c)
		}

	case KindUpdateCategory:
		if c, ok := a.Payload.(study.Category); ok {
			s.Categories = replaceByID(s.Categories, c, func(x study.Category) uint64 { return x.ID })
			s.Notes = mapNotes(s.Notes, func(n study.Note) study.Note {
				if n.CategoryID == c.ID {
					n.Category = c
				}
				return n
			})
		}

	case KindRemoveCategory:
		if id, ok := a.Payload.(uint64); ok {
			s.Categories = slices.DeleteFunc(slices.Clone(s.Categories), func(c study.Category) bool { return c.ID == id })
			s.Notes = slices.DeleteFunc(slices.Clone(s.Notes), func(n study.Note) bool { return n.CategoryID == id })
			if s.SelectedCategoryID == id {
				s.SelectedCategoryID = 0
			}
			if _, ok := s.Note(s.SelectedNoteID); !ok {
				s.SelectedNoteID = 0
			}
		}

	case KindLoadNotes:
		if ns, ok := a.Payload.([]study.Note); ok {
			s.Notes = cloneOrEmpty(ns)
		}

	case KindAddNote:
		if n, ok := a.Payload.(study.Note); ok {
			s.Notes = append(slices.Clip(s.Notes), n)
		}

	case KindUpdateNote:
		if n, ok := a.Payload.(study.Note); ok {
			s.Notes = replaceByID(s.Notes, n, func(x study.Note) uint64 { return x.ID })
		}

	case KindDeleteNote:
		if id, ok := a.Payload.(uint64); ok {
			s.Notes = slices.DeleteFunc(slices.Clone(s.Notes), func(n study.Note) bool { return n.ID == id })
			if s.SelectedNoteID == id {
				s.SelectedNoteID = 0
			}
		}

	case KindToggleBookmarkLocal:
		if id, ok := a.Payload.(uint64); ok {
			s.Notes = mapNotes(s.Notes, func(n study.Note) study.Note {
				if n.ID == id {
					n.IsBookmarked = !n.IsBookmarked
				}
				return n
			})
		}

	case KindLogActivity:
		if act, ok := a.Payload.(Activity); ok {
			keep := min(len(s.Activities), MaxActivities-1)
			next := make([]Activity, 0, keep+1)
			next = append(next, act)
			s.Activities = append(next, s.Activities[:keep]...)
		}
	}
	return s
}

func cloneOrEmpty[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return slices.Clone(xs)
}

// replaceByID swaps the element whose id matches v. A missing id is a no-op.
func replaceByID[T any](xs []T, v T, id func(T) uint64) []T {
	i := slices.IndexFunc(xs, func(x T) bool { return id(x) == id(v) })
	if i < 0 {
		return xs
	}
	out := slices.Clone(xs)
	out[i] = v
	return out
}

func mapNotes(ns []study.Note, f func(study.Note) study.Note) []study.Note {
	out := make([]study.Note, len(ns))
	for i, n := range ns {
		out[i] = f(n)
	}
	return out
}
