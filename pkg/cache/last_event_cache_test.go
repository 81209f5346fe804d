package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestLastEventCache_KeyScoping(t *testing.T) {
	c := &LastEventCache{}
	orgA, orgB := uuid.New(), uuid.New()
	itemID := uuid.New()

	keyA := c.key(orgA, "radio", itemID)
	keyB := c.key(orgB, "radio", itemID)
	if keyA == keyB {
		t.Fatal("keys for different organisations must differ")
	}

	keyRadio := c.key(orgA, "radio", itemID)
	keyInventory := c.key(orgA, "inventory", itemID)
	if keyRadio == keyInventory {
		t.Fatal("keys for different domains must differ")
	}

	want := "lastevent:" + orgA.String() + ":radio:" + itemID.String()
	if keyRadio != want {
		t.Fatalf("expected key %q, got %q", want, keyRadio)
	}
}

// Integration tests — skipped unless REDIS_URL is set.
// Set must never replace a newer cached event with an older one: retried bus
// deliveries and late warm goroutines arrive out of order.
func TestLastEventCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	c := NewLastEventCache(rc)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	entry := func(itemID uuid.UUID, date time.Time) *CachedLastEvent {
		return &CachedLastEvent{
			EventID:   uuid.Must(uuid.NewV7()),
			ItemID:    itemID,
			Type:      "issued",
			Date:      date,
			UserID:    uuid.New(),
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@x.com",
		}
	}

	t.Run("SetAndGetRoundTrip", func(t *testing.T) {
		orgID, itemID := uuid.New(), uuid.New()
		want := entry(itemID, base)
		if err := c.Set(ctx, orgID, "radio", want); err != nil {
			t.Fatalf("set: %v", err)
		}
		got, err := c.Get(ctx, orgID, "radio", itemID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.EventID != want.EventID || !got.Date.Equal(want.Date) || got.Email != want.Email {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
		}
	})

	t.Run("OlderWriteDoesNotOverwrite", func(t *testing.T) {
		orgID, itemID := uuid.New(), uuid.New()
		newer := entry(itemID, base.Add(time.Hour))
		older := entry(itemID, base)
		if err := c.Set(ctx, orgID, "radio", newer); err != nil {
			t.Fatalf("set newer: %v", err)
		}
		if err := c.Set(ctx, orgID, "radio", older); err != nil {
			t.Fatalf("set older: %v", err)
		}
		got, err := c.Get(ctx, orgID, "radio", itemID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.EventID != newer.EventID {
			t.Fatalf("older write replaced newer entry: got %v, want %v", got.EventID, newer.EventID)
		}
	})

	t.Run("SameDateLowerIDDoesNotOverwrite", func(t *testing.T) {
		orgID, itemID := uuid.New(), uuid.New()
		// V7 ids are time-ordered, so first is the tie-break loser.
		first := entry(itemID, base)
		second := entry(itemID, base)
		if err := c.Set(ctx, orgID, "radio", second); err != nil {
			t.Fatalf("set second: %v", err)
		}
		if err := c.Set(ctx, orgID, "radio", first); err != nil {
			t.Fatalf("set first: %v", err)
		}
		got, err := c.Get(ctx, orgID, "radio", itemID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.EventID != second.EventID {
			t.Fatalf("tie-break loser replaced winner: got %v, want %v", got.EventID, second.EventID)
		}
	})

	t.Run("NewerWriteOverwrites", func(t *testing.T) {
		orgID, itemID := uuid.New(), uuid.New()
		older := entry(itemID, base)
		newer := entry(itemID, base.Add(time.Minute))
		if err := c.Set(ctx, orgID, "radio", older); err != nil {
			t.Fatalf("set older: %v", err)
		}
		if err := c.Set(ctx, orgID, "radio", newer); err != nil {
			t.Fatalf("set newer: %v", err)
		}
		got, err := c.Get(ctx, orgID, "radio", itemID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.EventID != newer.EventID {
			t.Fatalf("newer write did not overwrite: got %v, want %v", got.EventID, newer.EventID)
		}
	})

	t.Run("DeleteThenOlderWriteLands", func(t *testing.T) {
		// Invalidation drops the guard along with the entry; the next write
		// wins regardless of age and later newer writes overwrite it.
		orgID, itemID := uuid.New(), uuid.New()
		newer := entry(itemID, base.Add(time.Hour))
		older := entry(itemID, base)
		if err := c.Set(ctx, orgID, "radio", newer); err != nil {
			t.Fatalf("set newer: %v", err)
		}
		if err := c.Delete(ctx, orgID, "radio", itemID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := c.Set(ctx, orgID, "radio", older); err != nil {
			t.Fatalf("set older: %v", err)
		}
		got, err := c.Get(ctx, orgID, "radio", itemID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.EventID != older.EventID {
			t.Fatalf("expected the post-delete write to land: got %v, want %v", got.EventID, older.EventID)
		}
	})
}
