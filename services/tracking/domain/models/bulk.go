package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Bulk is the persisted summary of one batch event-recording operation.
// EventIDs preserves request order: the i-th event was recorded for the i-th
// device id of the originating request. Bulks are immutable and never deleted.
type Bulk struct {
	ID           uuid.UUID
	OrgID        uuid.UUID
	Domain       Domain
	EventType    EventType
	BatteryCount int // caller-supplied aggregate, not validated against batch size
	UserID       uuid.UUID
	Date         time.Time
	EventIDs     []uuid.UUID
	CreatedAt    time.Time
}

// NewBulk constructs a valid Bulk with a generated time-ordered ID.
func NewBulk(orgID uuid.UUID, domain Domain, eventType EventType, batteryCount int, userID uuid.UUID, date time.Time, eventIDs []uuid.UUID) (*Bulk, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate bulk id: %w", err)
	}
	return &Bulk{
		ID:           id,
		OrgID:        orgID,
		Domain:       domain,
		EventType:    eventType,
		BatteryCount: batteryCount,
		UserID:       userID,
		Date:         date.UTC(),
		EventIDs:     eventIDs,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// BulkEntry is one event of a bulk with its owning item's device id resolved.
type BulkEntry struct {
	Event    Event
	DeviceID DeviceID
}

// BulkWithDetails is a Bulk with its events, their items, and the acting user
// resolved. Entries preserve the recording order of the originating request.
type BulkWithDetails struct {
	Bulk    Bulk
	User    EventUser
	Entries []BulkEntry
}
