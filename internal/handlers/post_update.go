package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avolkov/mini-blog/internal/middlewares"
	"github.com/avolkov/mini-blog/internal/models"
)

// PostUpdater defines the interface for updating posts.
type PostUpdater interface {
	UpdatePost(ctx context.Context, postID uuid.UUID, subject, content string) (*models.PostDB, error)
}

// NewUpdatePostHandler returns an HTTP handler for updating a post.
// @Summary Update a blog post
// @Description Replaces the content of a post. Only the owner may update it.
// @Tags blogs
// @Accept json
// @Produce json
// @Param post_id path string true "Post ID"
// @Param postContentRequest body handlers.PostContentRequest true "New content"
// @Success 200 {object} models.PostRead "Updated post"
// @Failure 400 {object} handlers.ErrorResponse "Invalid id or content"
// @Failure 401 {object} handlers.ErrorResponse "Invalid or missing token"
// @Failure 403 {object} handlers.ErrorResponse "Not the post owner"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Security BearerAuth
// @Router /blogs/posts/{post_id} [put]
func NewUpdatePostHandler(svc PostUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "post_id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid post id",
			})
			return
		}

		var req PostContentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		subject := middlewares.GetSubjectFromContext(r.Context())

		post, err := svc.UpdatePost(r.Context(), postID, subject, req.Content)
		if err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.NewPostRead(post))
	}
}
