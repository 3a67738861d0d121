package handler

import (
	"net/http"

	"studynotes/internal/apperror"
	"studynotes/internal/auth"
)

type MeHandler struct{}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, nil, apperror.NewUnauthenticated("not authorized", nil))
		return
	}
	writeJSON(w, http.StatusOK, u.Public())
}
