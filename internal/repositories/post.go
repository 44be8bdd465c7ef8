package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/avolkov/mini-blog/internal/logger"
	"github.com/avolkov/mini-blog/internal/models"
)

// PostReadRepository handles blog post read operations. Reads go through
// the context transaction when one is present so rows written earlier in
// the same request are visible.
type PostReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewPostReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *PostReadRepository {
	return &PostReadRepository{db: db, txGetter: txGetter}
}

func (r *PostReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// GetByID returns the post with the given id, or nil when absent.
func (r *PostReadRepository) GetByID(ctx context.Context, postID uuid.UUID) (*models.PostDB, error) {
	const query = `
		SELECT post_id, user_id, content, created_at, updated_at
		FROM blog_posts
		WHERE post_id = $1
	`

	var post models.PostDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &post, query, postID)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// ListByUserID returns the user's posts in creation order, paginated.
func (r *PostReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.PostDB, error) {
	const query = `
		SELECT post_id, user_id, content, created_at, updated_at
		FROM blog_posts
		WHERE user_id = $1
		ORDER BY created_at
		OFFSET $2 LIMIT $3
	`

	posts := make([]models.PostDB, 0, limit)
	err := sqlx.SelectContext(ctx, r.executor(ctx), &posts, query, userID, offset, limit)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, offset, limit},
		"result", len(posts),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return posts, nil
}

// PostWriteRepository handles blog post write operations.
type PostWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewPostWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *PostWriteRepository {
	return &PostWriteRepository{db: db, txGetter: txGetter}
}

func (r *PostWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new post row and returns it as stored.
func (r *PostWriteRepository) Save(ctx context.Context, postID, userID uuid.UUID, content string) (*models.PostDB, error) {
	query := `
		INSERT INTO blog_posts (post_id, user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING post_id, user_id, content, created_at, updated_at
	`

	var post models.PostDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &post, query, postID, userID, content)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID, userID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &post, nil
}

// UpdateContent replaces the post content and returns the updated row,
// or nil when the post does not exist.
func (r *PostWriteRepository) UpdateContent(ctx context.Context, postID uuid.UUID, content string) (*models.PostDB, error) {
	query := `
		UPDATE blog_posts
		SET content = $2, updated_at = NOW()
		WHERE post_id = $1
		RETURNING post_id, user_id, content, created_at, updated_at
	`

	var post models.PostDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &post, query, postID, content)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// Delete removes the post with the given id.
func (r *PostWriteRepository) Delete(ctx context.Context, postID uuid.UUID) error {
	query := `
		DELETE FROM blog_posts
		WHERE post_id = $1
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, postID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{postID},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
