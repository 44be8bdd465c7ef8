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

// PostCreator defines the interface for creating posts.
type PostCreator interface {
	CreatePost(ctx context.Context, subject, content string) (*models.PostDB, error)
}

// PostContentRequest is the JSON body carrying post content.
// swagger:model PostContentRequest
type PostContentRequest struct {
	// Post text, at most 500 characters
	// required: true
	// default: hello world
	Content string `json:"content"`
}

// NewCreatePostHandler returns an HTTP handler for creating posts.
// @Summary Create a blog post
// @Description Creates a post owned by the authenticated user
// @Tags blogs
// @Accept json
// @Produce json
// @Param postContentRequest body handlers.PostContentRequest true "Post content"
// @Success 201 {object} models.PostRead "Created post"
// @Failure 400 {object} handlers.ErrorResponse "Invalid or too long content"
// @Failure 401 {object} handlers.ErrorResponse "Invalid or missing token"
// @Security BearerAuth
// @Router /blogs/posts/ [post]
func NewCreatePostHandler(svc PostCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PostContentRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		subject := middlewares.GetSubjectFromContext(r.Context())

		post, err := svc.CreatePost(r.Context(), subject, req.Content)
		if err != nil {
			writePostError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.NewPostRead(post))
	}
}

// writePostError maps blog service errors to HTTP status codes.
// Ownership violations are always 403, token problems always 401.
func writePostError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyContent),
		errors.Is(err, services.ErrContentTooLong),
		errors.Is(err, services.ErrInvalidPagination):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Could not validate credentials"})
	case errors.Is(err, services.ErrNotPostOwner):
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Not authorized to modify this post"})
	case errors.Is(err, services.ErrPostNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Post not found"})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
	}
}
