package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/equiptrack/pkg/config"
	"github.com/ghuser/equiptrack/pkg/database"
	"github.com/ghuser/equiptrack/pkg/logger"
	"github.com/ghuser/equiptrack/pkg/migrator"
	trackingdomain "github.com/ghuser/equiptrack/services/tracking/domain"
	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// Integration tests — skipped unless DATABASE_URL is set. They run the real
// repository SQL against the migrated schema; column drift between the
// migrations and the queries only surfaces here, not in the fake-backed unit
// tests. Random ids keep runs isolated on a shared database.
func TestPostgresIntegration(t *testing.T) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	if err := migrator.RunMigrations(dbURL, os.DirFS("../../../../../migrations/tracking")); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	ctx := context.Background()
	log := logger.New(&config.Config{LogLevel: "error"})
	db, err := database.NewPool(ctx, dbURL, log)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	orgID, user := seedIdentity(t, db)

	items := NewItemRepository(db)
	events := NewEventRepository(db)
	bulks := NewBulkRepository(db)

	newItem := func(t *testing.T, device string) *models.Item {
		t.Helper()
		deviceID, err := models.NewDeviceID(device)
		if err != nil {
			t.Fatalf("device id: %v", err)
		}
		item, err := models.NewItem(orgID, models.DomainRadio, deviceID)
		if err != nil {
			t.Fatalf("new item: %v", err)
		}
		if err := items.Create(ctx, item); err != nil {
			t.Fatalf("create item: %v", err)
		}
		return item
	}

	appendEvent := func(t *testing.T, itemID uuid.UUID, eventType models.EventType, date time.Time) *models.Event {
		t.Helper()
		event, err := models.NewEvent(itemID, user.ID, eventType, date)
		if err != nil {
			t.Fatalf("new event: %v", err)
		}
		if err := events.Append(ctx, event); err != nil {
			t.Fatalf("append event: %v", err)
		}
		return event
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("ItemCreateAndFind", func(t *testing.T) {
		item := newItem(t, "INT-"+uuid.NewString())

		got, err := items.FindByDeviceID(ctx, orgID, models.DomainRadio, item.DeviceID)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got.ID != item.ID {
			t.Fatalf("expected item %v, got %v", item.ID, got.ID)
		}

		_, err = items.FindByDeviceID(ctx, orgID, models.DomainInventory, item.DeviceID)
		if !errors.Is(err, trackingdomain.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound across domains, got %v", err)
		}
	})

	t.Run("DuplicateInsertHitsUniqueIndex", func(t *testing.T) {
		item := newItem(t, "INT-"+uuid.NewString())

		dup, err := models.NewItem(orgID, models.DomainRadio, item.DeviceID)
		if err != nil {
			t.Fatalf("new item: %v", err)
		}
		if err := items.Create(ctx, dup); !errors.Is(err, trackingdomain.ErrItemAlreadyExists) {
			t.Fatalf("expected ErrItemAlreadyExists, got %v", err)
		}
	})

	t.Run("EventAppendListLast", func(t *testing.T) {
		item := newItem(t, "INT-"+uuid.NewString())
		appendEvent(t, item.ID, models.EventIssued, base)
		returned := appendEvent(t, item.ID, models.EventReturned, base.Add(time.Hour))

		list, err := events.ListForItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 events, got %d", len(list))
		}
		if list[0].Event.Type != models.EventIssued {
			t.Fatalf("expected oldest first, got %v", list[0].Event.Type)
		}
		if list[0].User.Email != user.Email {
			t.Fatalf("expected acting user %q, got %q", user.Email, list[0].User.Email)
		}

		last, err := events.LastForItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("last: %v", err)
		}
		if last == nil || last.Event.ID != returned.ID {
			t.Fatalf("expected last event %v, got %+v", returned.ID, last)
		}
	})

	t.Run("LastForItemBreaksDateTiesByID", func(t *testing.T) {
		item := newItem(t, "INT-"+uuid.NewString())
		appendEvent(t, item.ID, models.EventIssued, base)
		later := appendEvent(t, item.ID, models.EventServiced, base)

		last, err := events.LastForItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("last: %v", err)
		}
		if last == nil || last.Event.ID != later.ID {
			t.Fatalf("expected later-inserted event %v, got %+v", later.ID, last)
		}
	})

	t.Run("BulkCreateAndDetails", func(t *testing.T) {
		first := newItem(t, "INT-"+uuid.NewString())
		second := newItem(t, "INT-"+uuid.NewString())
		e1 := appendEvent(t, first.ID, models.EventReturned, base)
		e2 := appendEvent(t, second.ID, models.EventReturned, base)

		bulk, err := models.NewBulk(orgID, models.DomainRadio, models.EventReturned, 5,
			user.ID, base, []uuid.UUID{e1.ID, e2.ID})
		if err != nil {
			t.Fatalf("new bulk: %v", err)
		}
		if err := bulks.Create(ctx, bulk); err != nil {
			t.Fatalf("create bulk: %v", err)
		}

		found, err := bulks.FindByOrg(ctx, orgID, models.DomainRadio)
		if err != nil {
			t.Fatalf("find bulks: %v", err)
		}
		var got *models.BulkWithDetails
		for _, b := range found {
			if b.Bulk.ID == bulk.ID {
				got = b
			}
		}
		if got == nil {
			t.Fatalf("bulk %v not in listing", bulk.ID)
		}
		if len(got.Entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got.Entries))
		}
		if got.Entries[0].Event.ID != e1.ID || got.Entries[1].Event.ID != e2.ID {
			t.Fatal("entries do not preserve insert order")
		}
		if got.Entries[0].DeviceID != first.DeviceID {
			t.Fatalf("expected device %v, got %v", first.DeviceID, got.Entries[0].DeviceID)
		}
		if got.User.Email != user.Email {
			t.Fatalf("expected acting user %q, got %q", user.Email, got.User.Email)
		}
	})

	t.Run("CountOrphans", func(t *testing.T) {
		cutoff := time.Now().Add(time.Minute)
		before, err := events.CountOrphans(ctx, cutoff)
		if err != nil {
			t.Fatalf("count orphans: %v", err)
		}

		item := newItem(t, "INT-"+uuid.NewString())
		orphan := appendEvent(t, item.ID, models.EventIssued, base)

		after, err := events.CountOrphans(ctx, cutoff)
		if err != nil {
			t.Fatalf("count orphans: %v", err)
		}
		if after != before+1 {
			t.Fatalf("expected orphan count to rise from %d to %d, got %d", before, before+1, after)
		}

		bulk, err := models.NewBulk(orgID, models.DomainRadio, models.EventIssued, 0,
			user.ID, base, []uuid.UUID{orphan.ID})
		if err != nil {
			t.Fatalf("new bulk: %v", err)
		}
		if err := bulks.Create(ctx, bulk); err != nil {
			t.Fatalf("create bulk: %v", err)
		}

		resolved, err := events.CountOrphans(ctx, cutoff)
		if err != nil {
			t.Fatalf("count orphans: %v", err)
		}
		if resolved != before {
			t.Fatalf("expected orphan count back to %d after bulk insert, got %d", before, resolved)
		}
	})
}

// seedIdentity inserts a throwaway organisation and user for the run.
func seedIdentity(t *testing.T, db *database.Database) (uuid.UUID, models.EventUser) {
	t.Helper()
	ctx := context.Background()

	orgID := uuid.Must(uuid.NewV7())
	user := models.EventUser{
		ID:        uuid.Must(uuid.NewV7()),
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane+" + uuid.NewString() + "@x.com",
	}

	if _, err := db.Pool().Exec(ctx,
		`INSERT INTO organisations (id, name) VALUES ($1, $2)`,
		orgID, "test org",
	); err != nil {
		t.Fatalf("seed organisation: %v", err)
	}
	if _, err := db.Pool().Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, email, access_token)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.FirstName, user.LastName, user.Email, uuid.NewString(),
	); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return orgID, user
}
