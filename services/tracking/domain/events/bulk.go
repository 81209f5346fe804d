package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicBulkRecorded is the Watermill topic published after a Bulk is persisted.
const TopicBulkRecorded = "tracking.bulk_recorded"

// EventSnapshot is one recorded event inside a BulkRecordedEvent, denormalized
// with the owning item's device id and the acting user's display fields so
// consumers can warm read models without further lookups.
type EventSnapshot struct {
	EventID   uuid.UUID `json:"event_id"`
	ItemID    uuid.UUID `json:"item_id"`
	DeviceID  string    `json:"device_id"`
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// BulkRecordedEvent is published after a batch of item events and its summary
// record are persisted. Consumers subscribe via
// EventBus.Subscribe(ctx, events.TopicBulkRecorded).
type BulkRecordedEvent struct {
	EventID    uuid.UUID       `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int             `json:"version"`  // Schema version; increment on breaking changes
	BulkID     uuid.UUID       `json:"bulk_id"`
	OrgID      uuid.UUID       `json:"org_id"`
	Domain     string          `json:"domain"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Events     []EventSnapshot `json:"events"`
}
