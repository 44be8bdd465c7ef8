package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avolkov/mini-blog/internal/models"
)

// PostGetter defines the interface for reading a single post.
type PostGetter interface {
	GetPost(ctx context.Context, postID uuid.UUID) (*models.PostDB, error)
}

// NewGetPostHandler returns an HTTP handler for reading a post by id.
// @Summary Read a blog post
// @Description Public read of a single post
// @Tags blogs
// @Produce json
// @Param post_id path string true "Post ID"
// @Success 200 {object} models.PostRead "Post"
// @Failure 400 {object} handlers.ErrorResponse "Invalid post id"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Router /blogs/posts/{post_id} [get]
func NewGetPostHandler(svc PostGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "post_id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid post id",
			})
			return
		}

		post, err := svc.GetPost(r.Context(), postID)
		if err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.NewPostRead(post))
	}
}
