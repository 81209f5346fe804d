package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	pkgcache "github.com/ghuser/equiptrack/pkg/cache"
	"github.com/ghuser/equiptrack/pkg/logger"
	trackingdomain "github.com/ghuser/equiptrack/services/tracking/domain"
	domainevents "github.com/ghuser/equiptrack/services/tracking/domain/events"
	"github.com/ghuser/equiptrack/services/tracking/domain/models"
	"github.com/ghuser/equiptrack/services/tracking/domain/repositories"
)

// eventPublisher is the slice of the EventBus the service needs.
type eventPublisher interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// lastEventCache is the slice of the last-event read cache the service needs.
type lastEventCache interface {
	Get(ctx context.Context, orgID uuid.UUID, domain string, itemID uuid.UUID) (*pkgcache.CachedLastEvent, error)
	Set(ctx context.Context, orgID uuid.UUID, domain string, entry *pkgcache.CachedLastEvent) error
	Delete(ctx context.Context, orgID uuid.UUID, domain string, itemID uuid.UUID) error
}

// cacheWarmTimeout bounds the detached cache-warm write so slow Redis cannot
// pile up goroutines holding connections.
const cacheWarmTimeout = 5 * time.Second

// TrackingService orchestrates the item registry, event log, bulk recorder,
// and report renderer for one organisation-scoped equipment domain at a time.
// Both equipment domains run through this one implementation.
//
// Reads of "most recent event per item" are served from Redis when available;
// cache and bus may both be nil (degraded but correct).
type TrackingService struct {
	items  repositories.ItemRepository
	events repositories.EventRepository
	bulks  repositories.BulkRepository
	cache  lastEventCache
	bus    eventPublisher
	log    logger.Logger
}

// NewTrackingService returns a TrackingService wired with the given
// repositories, cache, and event bus.
func NewTrackingService(
	items repositories.ItemRepository,
	events repositories.EventRepository,
	bulks repositories.BulkRepository,
	cache lastEventCache,
	bus eventPublisher,
	log logger.Logger,
) *TrackingService {
	return &TrackingService{items: items, events: events, bulks: bulks, cache: cache, bus: bus, log: log}
}

// FindOrCreateItem returns the item with the given device id, creating it on
// first reference. A concurrent creator losing the unique-index race is
// treated as a no-op: the error is logged as a warning and the winning row is
// fetched and returned.
func (s *TrackingService) FindOrCreateItem(ctx context.Context, orgID uuid.UUID, domain models.Domain, deviceID models.DeviceID) (*models.Item, error) {
	item, err := s.items.FindByDeviceID(ctx, orgID, domain, deviceID)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, trackingdomain.ErrItemNotFound) {
		return nil, fmt.Errorf("find item: %w", err)
	}

	s.log.InfoContext(ctx, "creating item on first reference",
		"device_id", deviceID.String(), "domain", domain.String())

	item, err = models.NewItem(orgID, domain, deviceID)
	if err != nil {
		return nil, fmt.Errorf("new item: %w", err)
	}

	if err := s.items.Create(ctx, item); err != nil {
		if errors.Is(err, trackingdomain.ErrItemAlreadyExists) {
			s.log.WarnContext(ctx, "item already exists, using existing row",
				"device_id", deviceID.String(), "domain", domain.String())
			return s.items.FindByDeviceID(ctx, orgID, domain, deviceID)
		}
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// Items returns all items for the organisation and domain in persistence order.
func (s *TrackingService) Items(ctx context.Context, orgID uuid.UUID, domain models.Domain) ([]*models.Item, error) {
	items, err := s.items.FindByOrg(ctx, orgID, domain)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// ExpandedItems returns all items with their most recent event attached.
// Last-event lookups are independent reads and fan out concurrently; result
// order matches Items order regardless of completion order.
func (s *TrackingService) ExpandedItems(ctx context.Context, orgID uuid.UUID, domain models.Domain) ([]*models.ExpandedItem, error) {
	items, err := s.Items(ctx, orgID, domain)
	if err != nil {
		return nil, err
	}

	expanded := make([]*models.ExpandedItem, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			last, err := s.lastEvent(gctx, orgID, domain, item.ID)
			if err != nil {
				return err
			}
			expanded[i] = &models.ExpandedItem{Item: item, LastEvent: last}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("expand items: %w", err)
	}
	return expanded, nil
}

// lastEvent resolves an item's most recent event through the Redis cache:
//  1. Check the cache first.
//  2. On miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *TrackingService) lastEvent(ctx context.Context, orgID uuid.UUID, domain models.Domain, itemID uuid.UUID) (*models.EventWithUser, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, orgID, domain.String(), itemID); err == nil {
			return &models.EventWithUser{
				Event: models.Event{
					ID:     cached.EventID,
					ItemID: cached.ItemID,
					UserID: cached.UserID,
					Type:   models.EventType(cached.Type),
					Date:   cached.Date,
				},
				User: models.EventUser{
					ID:        cached.UserID,
					FirstName: cached.FirstName,
					LastName:  cached.LastName,
					Email:     cached.Email,
				},
			}, nil
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "last-event cache read failed", "item_id", itemID, "error", err)
		}
	}

	last, err := s.events.LastForItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("last event: %w", err)
	}

	if s.cache != nil && last != nil {
		go func() {
			warmCtx, cancel := context.WithTimeout(context.Background(), cacheWarmTimeout)
			defer cancel()
			_ = s.cache.Set(warmCtx, orgID, domain.String(), &pkgcache.CachedLastEvent{
				EventID:   last.Event.ID,
				ItemID:    itemID,
				Type:      last.Event.Type.String(),
				Date:      last.Event.Date,
				UserID:    last.User.ID,
				FirstName: last.User.FirstName,
				LastName:  last.User.LastName,
				Email:     last.User.Email,
			})
		}()
	}

	return last, nil
}

// ItemEvents returns all events for the item with the given device id,
// enriched with the acting users' identity. Returns ErrItemNotFound when the
// device id is absent from the organisation, never an empty list for an
// unknown item.
func (s *TrackingService) ItemEvents(ctx context.Context, orgID uuid.UUID, domain models.Domain, deviceID models.DeviceID) ([]*models.EventWithUser, error) {
	item, err := s.items.FindByDeviceID(ctx, orgID, domain, deviceID)
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}

	events, err := s.events.ListForItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// RecordBulk records one event per device id and persists a summary Bulk
// referencing the created events in request order. Duplicate device ids in
// one request are not deduplicated: each occurrence yields its own event
// against the same item.
//
// The three phases (resolve items, append events, insert bulk) are not one
// transaction. A failure after events are appended leaves them without a
// summary record; the worker's orphan audit surfaces such rows.
func (s *TrackingService) RecordBulk(
	ctx context.Context,
	orgID uuid.UUID,
	domain models.Domain,
	user models.EventUser,
	deviceIDs []models.DeviceID,
	batteryCount int,
	eventType models.EventType,
	date time.Time,
) error {
	// Phase 1: resolve every device id, creating missing items lazily.
	// Lookups are independent; the unique index makes concurrent creation safe.
	items := make([]*models.Item, len(deviceIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, deviceID := range deviceIDs {
		g.Go(func() error {
			item, err := s.FindOrCreateItem(gctx, orgID, domain, deviceID)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("resolve devices: %w", err)
	}

	// Phase 2: append one event per resolved item, preserving request order
	// in the collected ids.
	events := make([]*models.Event, len(items))
	g, gctx = errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			event, err := models.NewEvent(item.ID, user.ID, eventType, date)
			if err != nil {
				return err
			}
			if err := s.events.Append(gctx, event); err != nil {
				return err
			}
			events[i] = event
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("append events: %w", err)
	}

	// Phase 3: persist the summary record.
	eventIDs := make([]uuid.UUID, len(events))
	for i, event := range events {
		eventIDs[i] = event.ID
	}
	bulk, err := models.NewBulk(orgID, domain, eventType, batteryCount, user.ID, date, eventIDs)
	if err != nil {
		return fmt.Errorf("new bulk: %w", err)
	}
	if err := s.bulks.Create(ctx, bulk); err != nil {
		return fmt.Errorf("create bulk: %w", err)
	}

	s.invalidateLastEvents(ctx, orgID, domain, items)
	s.publishBulkRecorded(ctx, bulk, user, items, events)
	return nil
}

// invalidateLastEvents drops cached last-event entries for the affected items
// so readers fall through to Postgres until the worker re-warms them.
// Best-effort: failures are logged, never surfaced.
func (s *TrackingService) invalidateLastEvents(ctx context.Context, orgID uuid.UUID, domain models.Domain, items []*models.Item) {
	if s.cache == nil {
		return
	}
	for _, item := range items {
		if err := s.cache.Delete(ctx, orgID, domain.String(), item.ID); err != nil {
			s.log.WarnContext(ctx, "last-event cache invalidation failed",
				"item_id", item.ID, "error", err)
		}
	}
}

// publishBulkRecorded emits a BulkRecordedEvent after the bulk persists.
// Best-effort: a publish failure is logged, never surfaced. The bulk itself
// is already durable.
func (s *TrackingService) publishBulkRecorded(ctx context.Context, bulk *models.Bulk, user models.EventUser, items []*models.Item, events []*models.Event) {
	if s.bus == nil {
		return
	}

	snapshots := make([]domainevents.EventSnapshot, len(events))
	for i, event := range events {
		snapshots[i] = domainevents.EventSnapshot{
			EventID:   event.ID,
			ItemID:    event.ItemID,
			DeviceID:  items[i].DeviceID.String(),
			Type:      event.Type.String(),
			Date:      event.Date,
			UserID:    user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		}
	}

	evt := domainevents.BulkRecordedEvent{
		EventID:    uuid.New(),
		Version:    1,
		BulkID:     bulk.ID,
		OrgID:      bulk.OrgID,
		Domain:     bulk.Domain.String(),
		EventType:  bulk.EventType.String(),
		OccurredAt: bulk.Date,
		Events:     snapshots,
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		s.log.ErrorContext(ctx, "marshal bulk recorded event", "error", err)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", evt.EventID.String())
	msg.Metadata.Set("event_version", "1")
	if err := s.bus.Publish(ctx, domainevents.TopicBulkRecorded, msg); err != nil {
		s.log.ErrorContext(ctx, "publish bulk recorded event", "bulk_id", bulk.ID, "error", err)
	}
}

// Bulks returns all bulk records for the organisation and domain, newest
// first, with events, items, and the acting user resolved.
func (s *TrackingService) Bulks(ctx context.Context, orgID uuid.UUID, domain models.Domain) ([]*models.BulkWithDetails, error) {
	bulks, err := s.bulks.FindByOrg(ctx, orgID, domain)
	if err != nil {
		return nil, fmt.Errorf("list bulks: %w", err)
	}
	return bulks, nil
}

// ExportCSV renders all bulk records for the organisation and domain as a
// flat CSV report.
func (s *TrackingService) ExportCSV(ctx context.Context, orgID uuid.UUID, domain models.Domain) (string, error) {
	bulks, err := s.Bulks(ctx, orgID, domain)
	if err != nil {
		return "", err
	}
	return RenderBulksCSV(bulks), nil
}
