package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"studynotes/internal/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto its HTTP status. Only AppError messages reach the
// client; anything else becomes a generic 500.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var ae *apperror.AppError
	if !errors.As(err, &ae) {
		ae = apperror.New(apperror.Unknown, "internal error", err)
	}
	if ae.StatusCode() >= http.StatusInternalServerError && log != nil {
		log.Error("request failed", zap.Stringer("kind", ae.Kind), zap.Error(err))
	}
	writeJSON(w, ae.StatusCode(), ae.ToResponse())
}

// maxBodyBytes bounds a request body. Note content is free-form Markdown.
const maxBodyBytes = 4 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperror.NewValidation("request body too large", err)
		}
		return apperror.NewValidation("bad json", err)
	}
	return nil
}

// pathID parses the {id} route parameter. A malformed id can never name an
// owned row, so it is reported as NotFound.
func pathID(r *http.Request, what string) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NewNotFound(what + " not found")
	}
	return id, nil
}

type messageResponse struct {
	Message string `json:"message"`
}
