package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// LastEventCacheTTL is the time-to-live for cached last-event entries.
	LastEventCacheTTL = 24 * time.Hour

	lastEventKeyPrefix = "lastevent"
)

// CachedLastEvent is the denormalized "most recent event for an item" read
// model stored in Redis. The acting user's display fields are flattened in
// so the expanded item listing needs no further joins on a cache hit.
type CachedLastEvent struct {
	EventID   uuid.UUID
	ItemID    uuid.UUID
	Type      string
	Date      time.Time
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Email     string
}

// LastEventCache provides structured read/write operations for last-event entries.
// Keys are scoped by orgID and domain to prevent cross-tenant data leakage.
// Key format: "lastevent:{orgID}:{domain}:{itemID}"
type LastEventCache struct {
	client *RedisClient
}

// NewLastEventCache creates a LastEventCache backed by the given RedisClient.
func NewLastEventCache(r *RedisClient) *LastEventCache {
	return &LastEventCache{client: r}
}

// Get retrieves the cached last event for an item.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *LastEventCache) Get(ctx context.Context, orgID uuid.UUID, domain string, itemID uuid.UUID) (*CachedLastEvent, error) {
	key := c.key(orgID, domain, itemID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	eventID, err := uuid.Parse(vals["event_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse event_id: %w", err)
	}
	userID, err := uuid.Parse(vals["user_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse user_id: %w", err)
	}
	date, err := time.Parse(time.RFC3339Nano, vals["date"])
	if err != nil {
		return nil, fmt.Errorf("cache parse date: %w", err)
	}

	return &CachedLastEvent{
		EventID:   eventID,
		ItemID:    itemID,
		Type:      vals["type"],
		Date:      date,
		UserID:    userID,
		FirstName: vals["first_name"],
		LastName:  vals["last_name"],
		Email:     vals["email"],
	}, nil
}

// setIfNewer guards against out-of-order writers (retried bus deliveries,
// late warm goroutines) replacing a newer cached event with an older one.
// The comparison mirrors the last-event query: date first, event id breaks
// ties (ids are time-ordered). Check and write run atomically in Redis.
var setIfNewer = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'date_unix')
if cur then
	local curn = tonumber(cur)
	local newn = tonumber(ARGV[1])
	if curn > newn then return 0 end
	if curn == newn and redis.call('HGET', KEYS[1], 'event_id') >= ARGV[2] then return 0 end
end
redis.call('HSET', KEYS[1],
	'event_id', ARGV[2], 'user_id', ARGV[3], 'type', ARGV[4],
	'date', ARGV[5], 'date_unix', ARGV[1],
	'first_name', ARGV[6], 'last_name', ARGV[7], 'email', ARGV[8])
redis.call('EXPIRE', KEYS[1], ARGV[9])
return 1
`)

// Set writes a last-event entry as a Redis hash with a 24-hour TTL.
// The write is skipped when the stored entry is newer than the incoming one,
// so concurrent writers converge on the item's true latest event.
func (c *LastEventCache) Set(ctx context.Context, orgID uuid.UUID, domain string, entry *CachedLastEvent) error {
	key := c.key(orgID, domain, entry.ItemID)
	err := setIfNewer.Run(ctx, c.client.Client(), []string{key},
		entry.Date.UTC().UnixMicro(),
		entry.EventID.String(),
		entry.UserID.String(),
		entry.Type,
		entry.Date.UTC().Format(time.RFC3339Nano),
		entry.FirstName,
		entry.LastName,
		entry.Email,
		int(LastEventCacheTTL/time.Second),
	).Err()
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached last-event entry.
func (c *LastEventCache) Delete(ctx context.Context, orgID uuid.UUID, domain string, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(orgID, domain, itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "lastevent:{orgID}:{domain}:{itemID}"
func (c *LastEventCache) key(orgID uuid.UUID, domain string, itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s:%s", lastEventKeyPrefix, orgID, domain, itemID)
}
