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

// UserReadRepository handles user read operations. Reads go through the
// context transaction when one is present so rows written earlier in the
// same request are visible.
type UserReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

func (r *UserReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

const selectUserColumns = `
	SELECT user_id, username, email, password_hash,
	       full_name, street_address, zip_code, city, country,
	       created_at, updated_at
	FROM users
`

// GetByID returns the user with the given id, or nil when absent.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	query := selectUserColumns + ` WHERE user_id = $1`
	return r.getOne(ctx, query, userID)
}

// GetByUsername returns the user with the given username, or nil when absent.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.UserDB, error) {
	query := selectUserColumns + ` WHERE username = $1`
	return r.getOne(ctx, query, username)
}

// GetByEmail returns the user with the given email, or nil when absent.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := selectUserColumns + ` WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, arg)

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{arg},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository handles user write operations.
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new user row.
func (r *UserWriteRepository) Save(ctx context.Context, user *models.UserDB) error {
	query := `
		INSERT INTO users (user_id, username, email, password_hash,
		                   full_name, street_address, zip_code, city, country,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	args := []any{
		user.UserID, user.Username, user.Email, user.PasswordHash,
		user.FullName, user.StreetAddress, user.ZipCode, user.City, user.Country,
	}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{user.UserID, user.Username, user.Email},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// UpdateProfile merges the non-nil patch fields over the stored profile.
// Credentials, id and created_at are never touched.
func (r *UserWriteRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, patch models.ProfileUpdate) error {
	query := `
		UPDATE users
		SET full_name      = COALESCE($2, full_name),
		    street_address = COALESCE($3, street_address),
		    zip_code       = COALESCE($4, zip_code),
		    city           = COALESCE($5, city),
		    country        = COALESCE($6, country),
		    updated_at     = NOW()
		WHERE user_id = $1
	`
	args := []any{userID, patch.FullName, patch.StreetAddress, patch.ZipCode, patch.City, patch.Country}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	// Log with query in single line
	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
