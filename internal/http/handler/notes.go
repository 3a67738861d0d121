package handler

import (
	"context"
	"net/http"

	"studynotes/internal/auth"
	"studynotes/internal/study"

	"go.uber.org/zap"
)

type NoteService interface {
	ListNotes(ctx context.Context, userID uint64) ([]study.Note, error)
	CreateNote(ctx context.Context, userID uint64, in study.NoteInput) (study.Note, error)
	UpdateNote(ctx context.Context, userID, id uint64, p study.NotePatch) (study.Note, error)
	DeleteNote(ctx context.Context, userID, id uint64) error
	ToggleBookmark(ctx context.Context, userID, id uint64) (study.Note, error)
}

type NoteHandler struct {
	Svc NoteService
	Log *zap.Logger
}

type createNoteReq struct {
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Tags         []string `json:"tags"`
	IsBookmarked bool     `json:"isBookmarked"`
	Category     uint64   `json:"category"`
}

type updateNoteReq struct {
	Title        *string   `json:"title"`
	Content      *string   `json:"content"`
	Tags         *[]string `json:"tags"`
	IsBookmarked *bool     `json:"isBookmarked"`
	Category     *uint64   `json:"category"`
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	rows, err := h.Svc.ListNotes(r.Context(), uid)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if rows == nil {
		rows = []study.Note{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createNoteReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	n, err := h.Svc.CreateNote(r.Context(), uid, study.NoteInput{
		Title:        req.Title,
		Content:      req.Content,
		Tags:         req.Tags,
		IsBookmarked: req.IsBookmarked,
		CategoryID:   req.Category,
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r, "note")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	var req updateNoteReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	n, err := h.Svc.UpdateNote(r.Context(), uid, id, study.NotePatch{
		Title:        req.Title,
		Content:      req.Content,
		Tags:         req.Tags,
		IsBookmarked: req.IsBookmarked,
		CategoryID:   req.Category,
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r, "note")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	if err := h.Svc.DeleteNote(r.Context(), uid, id); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Note deleted"})
}

func (h *NoteHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r, "note")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	n, err := h.Svc.ToggleBookmark(r.Context(), uid, id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}
