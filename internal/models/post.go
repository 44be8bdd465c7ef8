package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxPostContentLength is the upper bound on post content, in characters.
const MaxPostContentLength = 500

// PostDB represents a blog post row in the database.
type PostDB struct {
	PostID    uuid.UUID `db:"post_id"`    // Primary key
	UserID    uuid.UUID `db:"user_id"`    // Owning user
	Content   string    `db:"content"`    // Post text, at most MaxPostContentLength chars
	CreatedAt time.Time `db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `db:"updated_at"` // Last update timestamp
}

// PostRead is the public view of a blog post.
type PostRead struct {
	PostID    uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPostRead builds the public view of a post row.
func NewPostRead(p *PostDB) PostRead {
	return PostRead{
		PostID:    p.PostID,
		UserID:    p.UserID,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
