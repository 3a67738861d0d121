package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{DuplicateUser, http.StatusBadRequest},
		{ValidationFailure, http.StatusBadRequest},
		{InvalidCredentials, http.StatusUnauthorized},
		{Unauthenticated, http.StatusUnauthorized},
		{NotFound, http.StatusNotFound},
		{StoreUnavailable, http.StatusInternalServerError},
		{Unknown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.kind))
			assert.Equal(t, tt.want, New(tt.kind, "x", nil).StatusCode())
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	base := NewNotFound("note not found")
	wrapped := fmt.Errorf("update note: %w", base)

	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, NotFound))
	assert.False(t, Is(wrapped, ValidationFailure))
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.False(t, Is(nil, Unknown))
}

func TestError_HidesCauseFromResponse(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:5432: connection refused")
	err := NewStoreUnavailable("failed to load notes", cause)

	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "failed to load notes", err.ToResponse().Message)
	assert.ErrorIs(t, err, cause)
}

func TestKindForStatus(t *testing.T) {
	assert.Equal(t, ValidationFailure, KindForStatus(http.StatusBadRequest))
	assert.Equal(t, Unauthenticated, KindForStatus(http.StatusUnauthorized))
	assert.Equal(t, NotFound, KindForStatus(http.StatusNotFound))
	assert.Equal(t, StoreUnavailable, KindForStatus(http.StatusInternalServerError))
	assert.Equal(t, Unknown, KindForStatus(http.StatusTeapot))
}
