package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/mini-blog/internal/logger"
	"github.com/avolkov/mini-blog/internal/models"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("could not resolve token subject")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.UserDB) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch models.ProfileUpdate) error
}

// TokenIssuer defines an interface for issuing bearer tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, subject string) (string, error)
}

// UserService handles registration, login and profile management.
type UserService struct {
	reader UserReader
	writer UserWriter
	jwt    TokenIssuer
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, jwt TokenIssuer) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
	}
}

// Register creates a new user. Both username and email must be free.
func (svc *UserService) Register(ctx context.Context, reg models.RegisterUser) (*models.UserDB, error) {
	existing, err := svc.reader.GetByUsername(ctx, reg.Username)
	if err != nil {
		logger.Log.Errorw("failed to check username", "err", err)
		return nil, err
	}
	if existing == nil {
		if existing, err = svc.reader.GetByEmail(ctx, reg.Email); err != nil {
			logger.Log.Errorw("failed to check email", "err", err)
			return nil, err
		}
	}
	if existing != nil {
		logger.Log.Errorw("user already exists", "username", reg.Username, "email", reg.Email)
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user := &models.UserDB{
		UserID:        uuid.New(),
		Username:      reg.Username,
		Email:         reg.Email,
		PasswordHash:  string(hashedPassword),
		FullName:      reg.FullName,
		StreetAddress: reg.StreetAddress,
		ZipCode:       reg.ZipCode,
		City:          reg.City,
		Country:       reg.Country,
	}

	if err := svc.writer.Save(ctx, user); err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return svc.reader.GetByID(ctx, user.UserID)
}

// Authenticate checks the credentials and returns the user,
// or nil when the user is unknown or the password does not match.
func (svc *UserService) Authenticate(ctx context.Context, username, password string) (*models.UserDB, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil
	}

	return user, nil
}

// Login authenticates a user and returns a bearer token whose
// subject is the username.
func (svc *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", err
	}

	return token, nil
}

// GetCurrent resolves a token subject to its user.
func (svc *UserService) GetCurrent(ctx context.Context, subject string) (*models.UserDB, error) {
	user, err := svc.reader.GetByUsername(ctx, subject)
	if err != nil {
		logger.Log.Errorw("failed to resolve subject", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Errorw("token subject has no user", "subject", subject)
		return nil, ErrUnauthorized
	}
	return user, nil
}

// UpdateProfile merges the non-nil patch fields over the current user's
// profile and returns a fresh read.
func (svc *UserService) UpdateProfile(ctx context.Context, subject string, patch models.ProfileUpdate) (*models.UserDB, error) {
	user, err := svc.GetCurrent(ctx, subject)
	if err != nil {
		return nil, err
	}

	if err := svc.writer.UpdateProfile(ctx, user.UserID, patch); err != nil {
		logger.Log.Errorw("failed to update profile", "err", err, "user_id", user.UserID)
		return nil, err
	}

	return svc.reader.GetByID(ctx, user.UserID)
}
