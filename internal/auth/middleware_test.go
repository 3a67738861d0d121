package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"studynotes/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	user *User
	err  error
	got  string
}

func (f *fakeValidator) ValidateToken(ctx context.Context, token string) (*User, error) {
	f.got = token
	return f.user, f.err
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		validator  *fakeValidator
		wantStatus int
		wantUserID uint64
	}{
		{
			name:       "missing header",
			validator:  &fakeValidator{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic abc",
			validator:  &fakeValidator{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			header:     "Bearer bad",
			validator:  &fakeValidator{err: apperror.NewUnauthenticated("invalid token", nil)},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "store down",
			header:     "Bearer ok",
			validator:  &fakeValidator{err: apperror.NewStoreUnavailable("failed to authorize request", nil)},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "valid",
			header:     "Bearer ok",
			validator:  &fakeValidator{user: &User{ID: 5, Name: "Ada"}},
			wantStatus: http.StatusOK,
			wantUserID: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID uint64
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/notes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(tt.validator)(next).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUserID, gotID)
			if tt.wantStatus != http.StatusOK {
				var body apperror.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.NotEmpty(t, body.Message)
			}
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)
	_, ok = UserIDFromContext(context.Background())
	assert.False(t, ok)
}
