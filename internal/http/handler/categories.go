package handler

import (
	"context"
	"net/http"

	"studynotes/internal/auth"
	"studynotes/internal/study"

	"go.uber.org/zap"
)

type CategoryService interface {
	ListCategories(ctx context.Context, userID uint64) ([]study.Category, error)
	CreateCategory(ctx context.Context, userID uint64, in study.CategoryInput) (study.Category, error)
	UpdateCategory(ctx context.Context, userID, id uint64, p study.CategoryPatch) (study.Category, error)
	DeleteCategory(ctx context.Context, userID, id uint64) error
}

type CategoryHandler struct {
	Svc CategoryService
	Log *zap.Logger
}

type createCategoryReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	TotalTopics int    `json:"totalTopics"`
}

type updateCategoryReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	TotalTopics *int    `json:"totalTopics"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	rows, err := h.Svc.ListCategories(r.Context(), uid)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if rows == nil {
		rows = []study.Category{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createCategoryReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	c, err := h.Svc.CreateCategory(r.Context(), uid, study.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		TotalTopics: req.TotalTopics,
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r, "category")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	var req updateCategoryReq
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.Log, err)
		return
	}

	c, err := h.Svc.UpdateCategory(r.Context(), uid, id, study.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		TotalTopics: req.TotalTopics,
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := pathID(r, "category")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	if err := h.Svc.DeleteCategory(r.Context(), uid, id); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Deleted"})
}
