package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/avolkov/mini-blog/internal/logger"
	"github.com/avolkov/mini-blog/internal/models"
)

// Error variables
var (
	ErrPostNotFound      = errors.New("post not found")
	ErrNotPostOwner      = errors.New("user is not the post owner")
	ErrEmptyContent      = errors.New("post content is empty")
	ErrContentTooLong    = errors.New("post content exceeds maximum length")
	ErrInvalidPagination = errors.New("offset must be >= 0 and limit >= 1")
)

// PostReader defines read-only operations for posts.
type PostReader interface {
	GetByID(ctx context.Context, postID uuid.UUID) (*models.PostDB, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.PostDB, error)
}

// PostWriter defines write operations for posts.
type PostWriter interface {
	Save(ctx context.Context, postID, userID uuid.UUID, content string) (*models.PostDB, error)
	UpdateContent(ctx context.Context, postID uuid.UUID, content string) (*models.PostDB, error)
	Delete(ctx context.Context, postID uuid.UUID) error
}

// CurrentUserResolver resolves a token subject to its user.
type CurrentUserResolver interface {
	GetCurrent(ctx context.Context, subject string) (*models.UserDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// BlogService handles post CRUD with ownership checks and activity publishing.
type BlogService struct {
	reader      PostReader
	writer      PostWriter
	users       CurrentUserResolver
	kafkaWriter KafkaWriter
}

// NewBlogService creates a new BlogService.
func NewBlogService(reader PostReader, writer PostWriter, users CurrentUserResolver, kafkaWriter KafkaWriter) *BlogService {
	return &BlogService{
		reader:      reader,
		writer:      writer,
		users:       users,
		kafkaWriter: kafkaWriter,
	}
}

func validateContent(content string) error {
	if content == "" {
		return ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > models.MaxPostContentLength {
		return ErrContentTooLong
	}
	return nil
}

// publishEvent publishes a post activity event to Kafka, best effort.
func (svc *BlogService) publishEvent(ctx context.Context, eventType string, post *models.PostDB) {
	if svc.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "post_id", post.PostID)
		return
	}

	event := models.PostEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		PostID:     post.PostID,
		UserID:     post.UserID,
		OccurredAt: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal post event", "post_id", post.PostID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(post.PostID.String()),
		Value: data,
	}

	if err := svc.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish post event", "post_id", post.PostID, "error", err)
	} else {
		logger.Log.Infow("post event published", "post_id", post.PostID, "type", eventType)
	}
}

// CreatePost persists a new post owned by the user the subject resolves to.
func (svc *BlogService) CreatePost(ctx context.Context, subject, content string) (*models.PostDB, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	user, err := svc.users.GetCurrent(ctx, subject)
	if err != nil {
		return nil, err
	}

	post, err := svc.writer.Save(ctx, uuid.New(), user.UserID, content)
	if err != nil {
		logger.Log.Errorw("failed to save post", "err", err, "user_id", user.UserID)
		return nil, err
	}

	svc.publishEvent(ctx, models.PostCreated, post)

	return post, nil
}

// GetPost returns the post with the given id.
func (svc *BlogService) GetPost(ctx context.Context, postID uuid.UUID) (*models.PostDB, error) {
	post, err := svc.reader.GetByID(ctx, postID)
	if err != nil {
		logger.Log.Errorw("failed to get post", "err", err, "post_id", postID)
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// ListPostsByUser returns a page of the user's posts.
func (svc *BlogService) ListPostsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]models.PostDB, error) {
	if offset < 0 || limit < 1 {
		return nil, ErrInvalidPagination
	}
	return svc.reader.ListByUserID(ctx, userID, offset, limit)
}

// UpdatePost replaces the content of a post owned by the subject's user.
func (svc *BlogService) UpdatePost(ctx context.Context, postID uuid.UUID, subject, content string) (*models.PostDB, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	user, err := svc.users.GetCurrent(ctx, subject)
	if err != nil {
		return nil, err
	}

	post, err := svc.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.UserID != user.UserID {
		logger.Log.Errorw("update rejected: not the owner", "post_id", postID, "user_id", user.UserID)
		return nil, ErrNotPostOwner
	}

	updated, err := svc.writer.UpdateContent(ctx, postID, content)
	if err != nil {
		logger.Log.Errorw("failed to update post", "err", err, "post_id", postID)
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}

	svc.publishEvent(ctx, models.PostUpdated, updated)

	return updated, nil
}

// DeletePost removes a post owned by the subject's user.
func (svc *BlogService) DeletePost(ctx context.Context, postID uuid.UUID, subject string) error {
	user, err := svc.users.GetCurrent(ctx, subject)
	if err != nil {
		return err
	}

	post, err := svc.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != user.UserID {
		logger.Log.Errorw("delete rejected: not the owner", "post_id", postID, "user_id", user.UserID)
		return ErrNotPostOwner
	}

	if err := svc.writer.Delete(ctx, postID); err != nil {
		logger.Log.Errorw("failed to delete post", "err", err, "post_id", postID)
		return err
	}

	svc.publishEvent(ctx, models.PostDeleted, post)

	return nil
}
