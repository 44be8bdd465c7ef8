package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avolkov/mini-blog/internal/logger"
	"github.com/avolkov/mini-blog/internal/middlewares"
	"github.com/avolkov/mini-blog/internal/models"
	"github.com/avolkov/mini-blog/internal/services"
)

// CurrentUserGetter resolves a token subject to its user.
type CurrentUserGetter interface {
	GetCurrent(ctx context.Context, subject string) (*models.UserDB, error)
}

// NewMeHandler returns an HTTP handler for reading the current user.
// @Summary Current user profile
// @Description Returns the public view of the user the bearer token belongs to
// @Tags users
// @Produce json
// @Success 200 {object} models.UserRead "Current user"
// @Failure 401 {object} handlers.ErrorResponse "Invalid or missing token"
// @Security BearerAuth
// @Router /users/me [get]
func NewMeHandler(svc CurrentUserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := middlewares.GetSubjectFromContext(r.Context())

		user, err := svc.GetCurrent(r.Context(), subject)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnauthorized):
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Could not validate credentials",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.NewUserRead(user))
	}
}
