package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"studynotes/internal/apperror"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenValidator resolves a bearer token to a user.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*User, error)
}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userKey).(*User)
	return u, ok && u != nil
}

func UserIDFromContext(ctx context.Context) (uint64, bool) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return 0, false
	}
	return u.ID, true
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved user in the request context.
func RequireAuth(v TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				unauthorized(w, apperror.NewUnauthenticated("not authorized", nil))
				return
			}
			token := strings.TrimPrefix(h, "Bearer ")

			u, err := v.ValidateToken(r.Context(), token)
			if err != nil {
				var ae *apperror.AppError
				if !errors.As(err, &ae) {
					ae = apperror.NewUnauthenticated("not authorized", err)
				}
				unauthorized(w, ae)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

func unauthorized(w http.ResponseWriter, err *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode())
	_ = json.NewEncoder(w).Encode(err.ToResponse())
}
