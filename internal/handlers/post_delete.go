package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avolkov/mini-blog/internal/middlewares"
)

// PostDeleter defines the interface for deleting posts.
type PostDeleter interface {
	DeletePost(ctx context.Context, postID uuid.UUID, subject string) error
}

// DeletePostResponse is the confirmation returned after a deletion.
// swagger:model DeletePostResponse
type DeletePostResponse struct {
	// Deleted post id
	PostID uuid.UUID `json:"post_id"`

	// Confirmation message
	// default: Post successfully deleted
	Message string `json:"message"`
}

// NewDeletePostHandler returns an HTTP handler for deleting a post.
// @Summary Delete a blog post
// @Description Deletes a post. Only the owner may delete it.
// @Tags blogs
// @Produce json
// @Param post_id path string true "Post ID"
// @Success 200 {object} handlers.DeletePostResponse "Deletion confirmation"
// @Failure 400 {object} handlers.ErrorResponse "Invalid post id"
// @Failure 401 {object} handlers.ErrorResponse "Invalid or missing token"
// @Failure 403 {object} handlers.ErrorResponse "Not the post owner"
// @Failure 404 {object} handlers.ErrorResponse "Post not found"
// @Security BearerAuth
// @Router /blogs/posts/{post_id} [delete]
func NewDeletePostHandler(svc PostDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "post_id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid post id",
			})
			return
		}

		subject := middlewares.GetSubjectFromContext(r.Context())

		if err := svc.DeletePost(r.Context(), postID, subject); err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeletePostResponse{
			PostID:  postID,
			Message: "Post successfully deleted",
		})
	}
}
