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

// ProfileUpdater defines the interface for partial profile updates.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, subject string, patch models.ProfileUpdate) (*models.UserDB, error)
}

// UpdateProfileRequest is a partial profile patch. Absent fields keep
// their prior value.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	FullName      *string `json:"full_name,omitempty"`
	StreetAddress *string `json:"street_address,omitempty"`
	ZipCode       *string `json:"zip_code,omitempty"`
	City          *string `json:"city,omitempty"`
	Country       *string `json:"country,omitempty"`
}

// NewUpdateProfileHandler returns an HTTP handler for profile updates.
// @Summary Update current user profile
// @Description Merges the non-null fields of the patch over the stored profile
// @Tags users
// @Accept json
// @Produce json
// @Param updateProfileRequest body handlers.UpdateProfileRequest true "Profile patch"
// @Success 200 {object} models.UserRead "Updated user"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Invalid or missing token"
// @Security BearerAuth
// @Router /users/me [put]
func NewUpdateProfileHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateProfileRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		subject := middlewares.GetSubjectFromContext(r.Context())

		user, err := svc.UpdateProfile(r.Context(), subject, models.ProfileUpdate{
			FullName:      req.FullName,
			StreetAddress: req.StreetAddress,
			ZipCode:       req.ZipCode,
			City:          req.City,
			Country:       req.Country,
		})
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
