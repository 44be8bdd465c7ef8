package middlewares

import (
	"context"
	"net/http"

	"github.com/avolkov/mini-blog/internal/logger"
)

// Tokener defines the minimal interface needed by the auth middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetSubject(ctx context.Context, tokenString string) (string, error)
}

// subjectKey is an unexported type for the subject context key.
type subjectKey struct{}

var subjectCtxKey = subjectKey{}

// SetSubjectToContext stores the token subject in the context.
func SetSubjectToContext(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectCtxKey, subject)
}

// GetSubjectFromContext retrieves the token subject from the context.
// Returns an empty string if not present.
func GetSubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(subjectCtxKey).(string)
	return subject
}

// AuthMiddleware returns a middleware that validates the bearer token and
// stores its subject in the request context.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			subject, err := tokener.GetSubject(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetSubjectToContext(ctx, subject)))
		})
	}
}
