package state

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type SuggestionType string

const (
	SuggestNextTopic          SuggestionType = "next_topic"
	SuggestReview             SuggestionType = "review"
	SuggestConceptExplanation SuggestionType = "concept_explanation"
)

// Suggestion is a canned study hint. It points at a category either by id
// or, for the built-in list, by the name of a default category.
type Suggestion struct {
	ID           string         `json:"id"`
	Type         SuggestionType `json:"type"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Priority     string         `json:"priority"`
	CategoryID   uint64         `json:"categoryId,omitempty"`
	CategoryName string         `json:"categoryName,omitempty"`
}

func DefaultSuggestions() []Suggestion {
	return []Suggestion{
		{
			ID:           "dsa-graphs",
			Type:         SuggestNextTopic,
			Title:        "Graph traversal",
			Description:  "You have covered trees. BFS and DFS on graphs are a natural next step.",
			Priority:     "high",
			CategoryName: "Data Structures & Algorithms",
		},
		{
			ID:           "dev-testing",
			Type:         SuggestReview,
			Title:        "Review testing strategies",
			Description:  "Revisit unit versus integration tests before your next project.",
			Priority:     "medium",
			CategoryName: "Development",
		},
		{
			ID:           "sd-cap",
			Type:         SuggestConceptExplanation,
			Title:        "CAP theorem",
			Description:  "Consistency, availability and partition tolerance trade-offs in distributed stores.",
			Priority:     "low",
			CategoryName: "System Design",
		},
	}
}

// LoadSuggestions reads a JSON array of suggestions from path.
func LoadSuggestions(path string) ([]Suggestion, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suggestions: %w", err)
	}
	var out []Suggestion
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("parse suggestions %s: %w", path, err)
	}
	return out, nil
}

// ResolveSuggestion finds the suggestion with id and the category it points
// at in s. The category id is 0 when the suggestion names no known category.
func ResolveSuggestion(s State, id string) (Suggestion, uint64, bool) {
	for _, sg := range s.Suggestions {
		if sg.ID != id {
			continue
		}
		if sg.CategoryID != 0 {
			if _, ok := s.Category(sg.CategoryID); ok {
				return sg, sg.CategoryID, true
			}
			return sg, 0, true
		}
		for _, c := range s.Categories {
			if strings.EqualFold(c.Name, sg.CategoryName) {
				return sg, c.ID, true
			}
		}
		return sg, 0, true
	}
	return Suggestion{}, 0, false
}
