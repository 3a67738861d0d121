package state

import (
	"testing"

	"studynotes/internal/study"

	"github.com/stretchr/testify/assert"
)

func TestCategoryProgress(t *testing.T) {
	notes := []study.Note{{CategoryID: 1}, {CategoryID: 1}, {CategoryID: 1}, {CategoryID: 2}}

	tests := []struct {
		name string
		cat  study.Category
		want int
	}{
		{"rounded", study.Category{ID: 1, TotalTopics: 8}, 38},
		{"zero topics", study.Category{ID: 1, TotalTopics: 0}, 0},
		{"over one hundred", study.Category{ID: 1, TotalTopics: 2}, 150},
		{"no notes", study.Category{ID: 3, TotalTopics: 5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryProgress(tt.cat, notes))
		})
	}
}

func TestAverageProgress(t *testing.T) {
	cats := []study.Category{{ID: 1, TotalTopics: 4}, {ID: 2, TotalTopics: 6}}
	notes := []study.Note{{CategoryID: 1}, {CategoryID: 2}, {CategoryID: 2}, {CategoryID: 99}}

	assert.Equal(t, 30, AverageProgress(cats, notes))
	assert.Equal(t, 0, AverageProgress(nil, notes))
	assert.Equal(t, 0, AverageProgress(cats, nil))
	assert.Equal(t, 0, AverageProgress([]study.Category{{ID: 1}}, notes))
	assert.Equal(t, 0, AverageProgress(cats, []study.Note{{CategoryID: 99}}))
}

func TestSummarize(t *testing.T) {
	o := Summarize(fixture())
	assert.Equal(t, Overview{
		TotalNotes:       3,
		BookmarkedNotes:  1,
		ActiveCategories: 2,
		AverageProgress:  21,
	}, o)

	assert.Equal(t, Overview{}, Summarize(New(nil)))
}
