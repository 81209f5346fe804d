package models

import (
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"

	trackingdomain "github.com/ghuser/equiptrack/services/tracking/domain"
)

const maxDeviceIDLength = 100

// DeviceID is a value object for the caller-assigned device identifier.
// Opaque to the core; unique per (organisation, domain).
type DeviceID string

// NewDeviceID constructs a valid DeviceID or returns an error if constraints
// are violated. Device ids are opaque strings but must be printable and bounded.
func NewDeviceID(s string) (DeviceID, error) {
	if s == "" {
		return "", fmt.Errorf("%w: must not be empty", trackingdomain.ErrInvalidDeviceID)
	}
	if len(s) > maxDeviceIDLength {
		return "", fmt.Errorf("%w: must not exceed %d characters", trackingdomain.ErrInvalidDeviceID, maxDeviceIDLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: must not contain control characters", trackingdomain.ErrInvalidDeviceID)
		}
	}
	return DeviceID(s), nil
}

// String returns the underlying string value.
func (d DeviceID) String() string {
	return string(d)
}

// Item is a tracked piece of equipment, scoped to one organisation and one
// equipment domain. Items are created on first reference and never deleted.
type Item struct {
	ID        uuid.UUID
	OrgID     uuid.UUID // tenant scope, always filtered on in queries
	Domain    Domain
	DeviceID  DeviceID
	CreatedAt time.Time
}

// NewItem constructs a valid Item aggregate with a generated time-ordered ID.
func NewItem(orgID uuid.UUID, domain Domain, deviceID DeviceID) (*Item, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate item id: %w", err)
	}
	return &Item{
		ID:        id,
		OrgID:     orgID,
		Domain:    domain,
		DeviceID:  deviceID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// ExpandedItem is an Item with its most recent event attached.
// LastEvent is nil when no event has been recorded yet.
type ExpandedItem struct {
	Item      *Item
	LastEvent *EventWithUser
}
