package state

import (
	"os"
	"path/filepath"
	"testing"

	"studynotes/internal/study"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSuggestionsNameSeededCategories(t *testing.T) {
	names := map[string]bool{}
	for _, c := range study.DefaultCategories {
		names[c.Name] = true
	}
	for _, sg := range DefaultSuggestions() {
		assert.True(t, names[sg.CategoryName], sg.ID)
	}
}

func TestLoadSuggestions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suggestions.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"x","type":"review","title":"Trees","priority":"high","categoryId":7}]`), 0o600))

	got, err := LoadSuggestions(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, SuggestReview, got[0].Type)
	assert.Equal(t, uint64(7), got[0].CategoryID)

	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))
	_, err = LoadSuggestions(path)
	assert.Error(t, err)

	_, err = LoadSuggestions(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveSuggestion(t *testing.T) {
	s := fixture()
	s.Suggestions = append(s.Suggestions,
		Suggestion{ID: "by-id", CategoryID: 2},
		Suggestion{ID: "stale-id", CategoryID: 42},
	)

	_, catID, ok := ResolveSuggestion(s, "dsa-graphs")
	require.True(t, ok)
	assert.Equal(t, uint64(1), catID)

	_, catID, ok = ResolveSuggestion(s, "by-id")
	require.True(t, ok)
	assert.Equal(t, uint64(2), catID)

	_, catID, ok = ResolveSuggestion(s, "stale-id")
	require.True(t, ok)
	assert.Zero(t, catID)

	_, catID, ok = ResolveSuggestion(s, "sd-cap")
	require.True(t, ok)
	assert.Zero(t, catID, "System Design is not in the fixture")

	_, _, ok = ResolveSuggestion(s, "nope")
	assert.False(t, ok)
}
