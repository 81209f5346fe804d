package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

func bulkFixture(t *testing.T, date time.Time, eventType models.EventType, batteryCount int, user models.EventUser, deviceIDs ...string) *models.BulkWithDetails {
	t.Helper()

	entries := make([]models.BulkEntry, len(deviceIDs))
	for i, raw := range deviceIDs {
		deviceID, err := models.NewDeviceID(raw)
		if err != nil {
			t.Fatalf("new device id: %v", err)
		}
		entries[i] = models.BulkEntry{
			Event:    models.Event{ID: uuid.New(), Type: eventType, Date: date},
			DeviceID: deviceID,
		}
	}
	return &models.BulkWithDetails{
		Bulk: models.Bulk{
			ID:           uuid.New(),
			EventType:    eventType,
			BatteryCount: batteryCount,
			Date:         date,
		},
		User:    user,
		Entries: entries,
	}
}

func TestRenderBulksCSV_Empty(t *testing.T) {
	got := RenderBulksCSV(nil)
	want := "date,eventType,batteryCount,user,deviceIds\n"
	if got != want {
		t.Fatalf("expected header only, got %q", got)
	}
}

func TestRenderBulksCSV_SingleRow(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	user := models.EventUser{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}
	bulk := bulkFixture(t, date, models.EventReturned, 5, user, "A", "B")

	got := RenderBulksCSV([]*models.BulkWithDetails{bulk})
	want := "date,eventType,batteryCount,user,deviceIds\n" +
		"2024-01-01T00:00:00.000Z,returned,5,\"Jane Doe (jane@x.com)\",\"A, B\"\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderBulksCSV_MillisecondPrecision(t *testing.T) {
	date := time.Date(2024, 6, 15, 13, 37, 42, 123_456_789, time.UTC)
	user := models.EventUser{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}
	bulk := bulkFixture(t, date, models.EventIssued, 0, user, "HRT-042")

	got := RenderBulksCSV([]*models.BulkWithDetails{bulk})
	if !strings.Contains(got, "2024-06-15T13:37:42.123Z") {
		t.Fatalf("expected millisecond-truncated timestamp, got %q", got)
	}
}

func TestRenderBulksCSV_NonUTCDateRendersAsUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	date := time.Date(2024, 1, 1, 1, 0, 0, 0, loc)
	user := models.EventUser{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}
	bulk := bulkFixture(t, date, models.EventReturned, 0, user, "A")

	got := RenderBulksCSV([]*models.BulkWithDetails{bulk})
	if !strings.Contains(got, "2024-01-01T00:00:00.000Z") {
		t.Fatalf("expected UTC timestamp, got %q", got)
	}
}

func TestRenderBulksCSV_MultipleRowsPreserveOrder(t *testing.T) {
	user := models.EventUser{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}
	newer := bulkFixture(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), models.EventIssued, 1, user, "A")
	older := bulkFixture(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), models.EventReturned, 2, user, "B")

	got := RenderBulksCSV([]*models.BulkWithDetails{newer, older})
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "2024-02-01") {
		t.Fatalf("expected first row to keep input order, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "2024-01-01") {
		t.Fatalf("expected second row to keep input order, got %q", lines[2])
	}
}

func TestRenderBulksCSV_SingleDeviceHasNoSeparator(t *testing.T) {
	user := models.EventUser{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com"}
	bulk := bulkFixture(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), models.EventReturned, 0, user, "HRT-042")

	got := RenderBulksCSV([]*models.BulkWithDetails{bulk})
	if !strings.Contains(got, `"HRT-042"`) {
		t.Fatalf("expected quoted single device id, got %q", got)
	}
}
