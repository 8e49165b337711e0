package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntryStatusEvent notifies downstream consumers that a planned entry's
// month status changed.
type EntryStatusEvent struct {
	EntryID       uuid.UUID `json:"entry_id"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing domain events to a
// message broker.
type EventPublisher interface {
	// PublishEntryStatusChanged publishes a status transition event.
	// Publishing is best effort; callers log failures and continue.
	PublishEntryStatusChanged(ctx context.Context, event EntryStatusEvent) error

	// Close releases the underlying broker connection.
	Close() error
}
