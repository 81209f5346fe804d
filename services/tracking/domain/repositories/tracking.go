package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// FindByDeviceID retrieves the item with the given device id in the
	// organisation and domain. Returns ErrItemNotFound if absent.
	FindByDeviceID(ctx context.Context, orgID uuid.UUID, domain models.Domain, deviceID models.DeviceID) (*models.Item, error)

	// Create persists a new Item. Returns ErrItemAlreadyExists when the
	// (organisation, domain, device id) unique constraint is violated.
	Create(ctx context.Context, item *models.Item) error

	// FindByOrg retrieves all items for the organisation and domain in
	// persistence order.
	FindByOrg(ctx context.Context, orgID uuid.UUID, domain models.Domain) ([]*models.Item, error)
}

// EventRepository is the persistence interface for the append-only event log.
type EventRepository interface {
	// Append persists an Event unconditionally. Repeated events for the same
	// item/date/type are not deduplicated.
	Append(ctx context.Context, event *models.Event) error

	// ListForItem retrieves all events for the item with the acting user's
	// identity joined in, oldest first.
	ListForItem(ctx context.Context, itemID uuid.UUID) ([]*models.EventWithUser, error)

	// LastForItem retrieves the event with the maximum date for the item,
	// or nil when the item has no events. Ties on date resolve to the
	// largest event id (ids are time-ordered, so the latest insert wins).
	LastForItem(ctx context.Context, itemID uuid.UUID) (*models.EventWithUser, error)

	// CountOrphans counts events created before the cutoff that no bulk
	// references. Used by the background audit of the non-transactional
	// bulk-recording flow.
	CountOrphans(ctx context.Context, createdBefore time.Time) (int64, error)
}

// BulkRepository is the persistence interface for bulk summary records.
type BulkRepository interface {
	// Create persists the Bulk and its ordered event references atomically.
	Create(ctx context.Context, bulk *models.Bulk) error

	// FindByOrg retrieves all bulks for the organisation and domain with
	// events, owning items, and the acting user resolved. Ordered by
	// date descending, then id descending.
	FindByOrg(ctx context.Context, orgID uuid.UUID, domain models.Domain) ([]*models.BulkWithDetails, error)
}
