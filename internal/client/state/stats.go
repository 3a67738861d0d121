package state

import (
	"math"

	"studynotes/internal/study"
)

// CategoryProgress is round(100 * notes in cat / cat.TotalTopics). It is 0
// when the category has no topics and is not capped at 100.
func CategoryProgress(cat study.Category, notes []study.Note) int {
	if cat.TotalTopics <= 0 {
		return 0
	}
	count := 0
	for _, n := range notes {
		if n.CategoryID == cat.ID {
			count++
		}
	}
	return percent(count, cat.TotalTopics)
}

// AverageProgress is round(100 * sum of notes per category / sum of topics).
// It is 0 when either set is empty or either sum is zero.
func AverageProgress(categories []study.Category, notes []study.Note) int {
	if len(categories) == 0 || len(notes) == 0 {
		return 0
	}
	perCategory := notesPerCategory(notes)

	var owned, topics int
	for _, c := range categories {
		owned += perCategory[c.ID]
		topics += c.TotalTopics
	}
	if owned == 0 || topics <= 0 {
		return 0
	}
	return percent(owned, topics)
}

// Overview is the dashboard summary.
type Overview struct {
	TotalNotes       int
	BookmarkedNotes  int
	ActiveCategories int // categories holding at least one note
	AverageProgress  int
}

func Summarize(s State) Overview {
	perCategory := notesPerCategory(s.Notes)

	o := Overview{
		TotalNotes:      len(s.Notes),
		AverageProgress: AverageProgress(s.Categories, s.Notes),
	}
	for _, n := range s.Notes {
		if n.IsBookmarked {
			o.BookmarkedNotes++
		}
	}
	for _, c := range s.Categories {
		if perCategory[c.ID] > 0 {
			o.ActiveCategories++
		}
	}
	return o
}

func notesPerCategory(notes []study.Note) map[uint64]int {
	m := make(map[uint64]int, len(notes))
	for _, n := range notes {
		m[n.CategoryID]++
	}
	return m
}

func percent(part, whole int) int {
	return int(math.Round(100 * float64(part) / float64(whole)))
}
