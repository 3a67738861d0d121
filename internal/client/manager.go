package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"studynotes/internal/apperror"
	"studynotes/internal/client/state"
	"studynotes/internal/study"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager owns the client snapshot for one session. Mutations are
// write-through: the API call runs first, and only a successful response is
// folded into local state. A failed call leaves state untouched, is logged,
// and is returned to the caller.
type Manager struct {
	api API
	log *zap.Logger

	mu sync.Mutex
	st state.State

	now   func() time.Time
	newID func() string
}

func NewManager(api API, log *zap.Logger, suggestions []state.Suggestion) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		api:   api,
		log:   log,
		st:    state.New(suggestions),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// State returns the current snapshot. Callers must treat it as read-only.
func (m *Manager) State() state.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st
}

// Dispatch applies a purely local action, such as a view change.
func (m *Manager) Dispatch(actions ...state.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range actions {
		m.st = state.Reduce(m.st, a)
	}
}

func (m *Manager) fail(op string, err error) error {
	m.log.Warn(op+" failed",
		zap.Stringer("kind", apperror.KindOf(err)),
		zap.Error(err),
	)
	return err
}

func (m *Manager) activity(t state.ActivityType, title string, categoryID uint64) state.Action {
	return state.LogActivity(state.Activity{
		ID:         m.newID(),
		Type:       t,
		Title:      title,
		CategoryID: categoryID,
		Timestamp:  m.now().UTC(),
	})
}

// Load replaces the local categories and notes with the server's.
func (m *Manager) Load(ctx context.Context) error {
	cats, err := m.api.ListCategories(ctx)
	if err != nil {
		return m.fail("load categories", err)
	}
	notes, err := m.api.ListNotes(ctx)
	if err != nil {
		return m.fail("load notes", err)
	}
	m.Dispatch(state.LoadCategories(cats), state.LoadNotes(notes))
	return nil
}

func (m *Manager) AddCategory(ctx context.Context, in study.CategoryInput) (study.Category, error) {
	c, err := m.api.CreateCategory(ctx, in)
	if err != nil {
		return study.Category{}, m.fail("add category", err)
	}
	m.Dispatch(
		state.AddCategory(c),
		m.activity(state.ActivityCategoryCreated, fmt.Sprintf("Created category %q", c.Name), c.ID),
	)
	return c, nil
}

func (m *Manager) UpdateCategory(ctx context.Context, id uint64, p study.CategoryPatch) (study.Category, error) {
	c, err := m.api.UpdateCategory(ctx, id, p)
	if err != nil {
		return study.Category{}, m.fail("update category", err)
	}
	m.Dispatch(state.UpdateCategory(c))
	return c, nil
}

// DeleteCategory removes the category and, locally, every note filed under it.
func (m *Manager) DeleteCategory(ctx context.Context, id uint64) error {
	if err := m.api.DeleteCategory(ctx, id); err != nil {
		return m.fail("delete category", err)
	}
	title := "Deleted category"
	if c, ok := m.State().Category(id); ok {
		title = fmt.Sprintf("Deleted category %q", c.Name)
	}
	m.Dispatch(
		state.RemoveCategory(id),
		m.activity(state.ActivityCategoryDeleted, title, id),
	)
	return nil
}

func (m *Manager) AddNote(ctx context.Context, in study.NoteInput) (study.Note, error) {
	n, err := m.api.CreateNote(ctx, in)
	if err != nil {
		return study.Note{}, m.fail("add note", err)
	}
	m.Dispatch(
		state.AddNote(n),
		m.activity(state.ActivityNoteCreated, fmt.Sprintf("Created note %q", n.Title), n.CategoryID),
	)
	return n, nil
}

func (m *Manager) UpdateNote(ctx context.Context, id uint64, p study.NotePatch) (study.Note, error) {
	n, err := m.api.UpdateNote(ctx, id, p)
	if err != nil {
		return study.Note{}, m.fail("update note", err)
	}
	m.Dispatch(
		state.UpdateNote(n),
		m.activity(state.ActivityNoteUpdated, fmt.Sprintf("Updated note %q", n.Title), n.CategoryID),
	)
	return n, nil
}

func (m *Manager) DeleteNote(ctx context.Context, id uint64) error {
	if err := m.api.DeleteNote(ctx, id); err != nil {
		return m.fail("delete note", err)
	}
	title := "Deleted note"
	var categoryID uint64
	if n, ok := m.State().Note(id); ok {
		title = fmt.Sprintf("Deleted note %q", n.Title)
		categoryID = n.CategoryID
	}
	m.Dispatch(
		state.DeleteNote(id),
		m.activity(state.ActivityNoteDeleted, title, categoryID),
	)
	return nil
}

// ToggleBookmark flips the flag on the server and folds the returned row.
func (m *Manager) ToggleBookmark(ctx context.Context, id uint64) (study.Note, error) {
	n, err := m.api.ToggleBookmark(ctx, id)
	if err != nil {
		return study.Note{}, m.fail("toggle bookmark", err)
	}
	m.Dispatch(state.UpdateNote(n))
	return n, nil
}

// SelectSuggestion focuses the category a suggestion points at and switches
// to the category view. A suggestion whose category is not loaded leaves the
// view unchanged.
func (m *Manager) SelectSuggestion(id string) (state.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sg, categoryID, ok := state.ResolveSuggestion(m.st, id)
	if !ok {
		return state.Suggestion{}, apperror.NewNotFound("suggestion not found")
	}
	if categoryID == 0 {
		return sg, apperror.NewNotFound("no category for suggestion")
	}
	m.st = state.Reduce(m.st, state.SelectCategory(categoryID))
	m.st = state.Reduce(m.st, state.SetView(state.ViewCategory))
	return sg, nil
}

func (m *Manager) Overview() state.Overview {
	return state.Summarize(m.State())
}

func (m *Manager) Notes(f state.Filter) []study.Note {
	return state.FilterNotes(m.State().Notes, f)
}
