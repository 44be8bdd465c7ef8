package models

import (
	"time"

	"github.com/google/uuid"
)

// Post activity event types published to Kafka.
const (
	PostCreated = "post_created"
	PostUpdated = "post_updated"
	PostDeleted = "post_deleted"
)

// PostEvent is the message published for each post mutation.
type PostEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	PostID     uuid.UUID `json:"post_id"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
