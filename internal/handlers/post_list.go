package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avolkov/mini-blog/internal/models"
)

// PostLister defines the interface for paginated post listing.
type PostLister interface {
	ListPostsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.PostDB, error)
}

// Pagination defaults for the user post listing.
const (
	defaultListOffset = 0
	defaultListLimit  = 10
)

// NewListPostsHandler returns an HTTP handler listing a user's posts.
// @Summary List a user's blog posts
// @Description Public paginated listing of the posts owned by a user
// @Tags blogs
// @Produce json
// @Param user_id path string true "User ID"
// @Param offset query int false "Pagination offset (>= 0)"
// @Param limit query int false "Page size (>= 1)"
// @Success 200 {array} models.PostRead "Posts"
// @Failure 400 {object} handlers.ErrorResponse "Invalid user id or pagination"
// @Router /blogs/users/{user_id}/posts [get]
func NewListPostsHandler(svc PostLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid user id",
			})
			return
		}

		offset, err := queryInt(r, "offset", defaultListOffset)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid offset",
			})
			return
		}

		limit, err := queryInt(r, "limit", defaultListLimit)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid limit",
			})
			return
		}

		posts, err := svc.ListPostsByUser(r.Context(), userID, offset, limit)
		if err != nil {
			writePostError(w, err)
			return
		}

		views := make([]models.PostRead, 0, len(posts))
		for i := range posts {
			views = append(views, models.NewPostRead(&posts[i]))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(views)
	}
}

// queryInt reads an integer query parameter, falling back to def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
