// Package state holds the client's in-memory snapshot of a user's study data
// and the pure reduction function that is the only way to change it.
package state

import (
	"time"

	"studynotes/internal/study"
)

type ViewMode string

const (
	ViewDashboard ViewMode = "dashboard"
	ViewCategory  ViewMode = "category"
	ViewNotes     ViewMode = "notes"
	ViewEditor    ViewMode = "editor"
)

func (v ViewMode) Valid() bool {
	switch v {
	case ViewDashboard, ViewCategory, ViewNotes, ViewEditor:
		return true
	}
	return false
}

type ActivityType string

const (
	ActivityCategoryCreated ActivityType = "category_created"
	ActivityCategoryDeleted ActivityType = "category_deleted"
	ActivityNoteCreated     ActivityType = "note_created"
	ActivityNoteUpdated     ActivityType = "note_updated"
	ActivityNoteDeleted     ActivityType = "note_deleted"
)

// MaxActivities bounds the recent-activity log.
const MaxActivities = 20

type Activity struct {
	ID         string       `json:"id"`
	Type       ActivityType `json:"type"`
	Title      string       `json:"title"`
	CategoryID uint64       `json:"categoryId"`
	Timestamp  time.Time    `json:"timestamp"`
}

type State struct {
	Categories  []study.Category
	Notes       []study.Note
	Activities  []Activity // newest first
	Suggestions []Suggestion

	SelectedCategoryID uint64 // 0 means none
	SelectedNoteID     uint64
	View               ViewMode
}

// New returns the empty snapshot a session starts from.
func New(suggestions []Suggestion) State {
	return State{
		Categories:  []study.Category{},
		Notes:       []study.Note{},
		Activities:  []Activity{},
		Suggestions: append([]Suggestion{}, suggestions...),
		View:        ViewDashboard,
	}
}

func (s State) Category(id uint64) (study.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return study.Category{}, false
}

func (s State) Note(id uint64) (study.Note, bool) {
	for _, n := range s.Notes {
		if n.ID == id {
			return n, true
		}
	}
	return study.Note{}, false
}
