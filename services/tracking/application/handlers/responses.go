package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// UserResponse is the acting user's identity as rendered in event payloads.
type UserResponse struct {
	FirstName string `json:"firstName" example:"Jane"`
	LastName  string `json:"lastName"  example:"Doe"`
	Email     string `json:"email"     example:"jane@example.com"`
} // @name UserResponse

// EventResponse is one recorded item event.
type EventResponse struct {
	ID   uuid.UUID    `json:"id"   example:"0195e7a1-7a2b-7c3d-8e4f-5a6b7c8d9e0f"`
	Type string       `json:"type" example:"returned"`
	Date time.Time    `json:"date" example:"2024-01-01T00:00:00Z"`
	User UserResponse `json:"user"`
} // @name EventResponse

// ExpandedItemResponse is an item with its most recent event attached.
// LastEvent is null when no event has been recorded yet.
type ExpandedItemResponse struct {
	ID        uuid.UUID      `json:"id"        example:"0195e7a1-7a2b-7c3d-8e4f-5a6b7c8d9e0f"`
	DeviceID  string         `json:"deviceId"  example:"HRT-042"`
	CreatedAt time.Time      `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	LastEvent *EventResponse `json:"lastEvent"`
} // @name ExpandedItemResponse

// BulkEventResponse is one event of a bulk with its device id resolved.
type BulkEventResponse struct {
	ID       uuid.UUID `json:"id"       example:"0195e7a1-7a2b-7c3d-8e4f-5a6b7c8d9e0f"`
	Type     string    `json:"type"     example:"returned"`
	Date     time.Time `json:"date"     example:"2024-01-01T00:00:00Z"`
	DeviceID string    `json:"deviceId" example:"HRT-042"`
} // @name BulkEventResponse

// BulkResponse is one persisted batch event-recording operation.
type BulkResponse struct {
	ID           uuid.UUID           `json:"id"           example:"0195e7a1-7a2b-7c3d-8e4f-5a6b7c8d9e0f"`
	EventType    string              `json:"eventType"    example:"returned"`
	BatteryCount int                 `json:"batteryCount" example:"5"`
	Date         time.Time           `json:"date"         example:"2024-01-01T00:00:00Z"`
	User         UserResponse        `json:"user"`
	Events       []BulkEventResponse `json:"events"`
} // @name BulkResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toEventResponse(ev *models.EventWithUser) *EventResponse {
	if ev == nil {
		return nil
	}
	return &EventResponse{
		ID:   ev.Event.ID,
		Type: ev.Event.Type.String(),
		Date: ev.Event.Date,
		User: UserResponse{
			FirstName: ev.User.FirstName,
			LastName:  ev.User.LastName,
			Email:     ev.User.Email,
		},
	}
}

func toBulkResponse(b *models.BulkWithDetails) BulkResponse {
	events := make([]BulkEventResponse, len(b.Entries))
	for i, entry := range b.Entries {
		events[i] = BulkEventResponse{
			ID:       entry.Event.ID,
			Type:     entry.Event.Type.String(),
			Date:     entry.Event.Date,
			DeviceID: entry.DeviceID.String(),
		}
	}
	return BulkResponse{
		ID:           b.Bulk.ID,
		EventType:    b.Bulk.EventType.String(),
		BatteryCount: b.Bulk.BatteryCount,
		Date:         b.Bulk.Date,
		User: UserResponse{
			FirstName: b.User.FirstName,
			LastName:  b.User.LastName,
			Email:     b.User.Email,
		},
		Events: events,
	}
}
