package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is an append-only record of an action taken on an Item.
// Events are immutable and never deleted.
type Event struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	UserID    uuid.UUID
	Type      EventType
	Date      time.Time // caller-supplied action timestamp, not insertion time
	CreatedAt time.Time
}

// NewEvent constructs a valid Event with a generated time-ordered ID.
// Repeated events for the same item/date/type are not deduplicated.
func NewEvent(itemID, userID uuid.UUID, eventType EventType, date time.Time) (*Event, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate event id: %w", err)
	}
	return &Event{
		ID:        id,
		ItemID:    itemID,
		UserID:    userID,
		Type:      eventType,
		Date:      date.UTC(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventUser is the acting user's identity, joined in for display.
// A read-only projection of the identity context; never written from here.
type EventUser struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
}

// EventWithUser is an Event enriched with the acting user's identity.
type EventWithUser struct {
	Event Event
	User  EventUser
}
