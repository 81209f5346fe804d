package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ghuser/equiptrack/pkg/database"
	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// EventRepository implements repositories.EventRepository against PostgreSQL.
type EventRepository struct {
	db *database.Database
}

// NewEventRepository returns an EventRepository backed by the given connection pool.
func NewEventRepository(db *database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Append persists an Event unconditionally. No deduplication of repeated
// events for the same item/date/type.
func (r *EventRepository) Append(ctx context.Context, event *models.Event) error {
	const q = `
		INSERT INTO item_events (id, item_id, user_id, event_type, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Pool().Exec(ctx, q,
		event.ID, event.ItemID, event.UserID, event.Type.String(), event.Date, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// ListForItem retrieves all events for the item, oldest first, with the
// acting user joined in for display.
func (r *EventRepository) ListForItem(ctx context.Context, itemID uuid.UUID) ([]*models.EventWithUser, error) {
	const q = eventWithUserSelect + `
		WHERE e.item_id = $1
		ORDER BY e.date, e.id`

	rows, err := r.db.Pool().Query(ctx, q, itemID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []*models.EventWithUser
	for rows.Next() {
		ev, err := scanEventWithUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// LastForItem retrieves the event with the maximum date for the item, or nil
// when the item has no events. Ties on date resolve to the largest id; ids
// are time-ordered, so the most recently inserted event wins.
func (r *EventRepository) LastForItem(ctx context.Context, itemID uuid.UUID) (*models.EventWithUser, error) {
	const q = eventWithUserSelect + `
		WHERE e.item_id = $1
		ORDER BY e.date DESC, e.id DESC
		LIMIT 1`

	ev, err := scanEventWithUser(r.db.Pool().QueryRow(ctx, q, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query last event: %w", err)
	}
	return ev, nil
}

// CountOrphans counts events created before the cutoff that no bulk
// references. Bulk recording is not transactional across its three writes, so
// a crash between event append and bulk insert leaves such rows behind.
func (r *EventRepository) CountOrphans(ctx context.Context, createdBefore time.Time) (int64, error) {
	const q = `
		SELECT count(*)
		FROM item_events e
		LEFT JOIN event_bulk_events be ON be.event_id = e.id
		WHERE be.event_id IS NULL AND e.created_at < $1`

	var n int64
	if err := r.db.Pool().QueryRow(ctx, q, createdBefore).Scan(&n); err != nil {
		return 0, fmt.Errorf("count orphan events: %w", err)
	}
	return n, nil
}

const eventWithUserSelect = `
		SELECT e.id, e.item_id, e.user_id, e.event_type, e.date, e.created_at,
		       u.first_name, u.last_name, u.email
		FROM item_events e
		JOIN users u ON u.id = e.user_id`

func scanEventWithUser(row pgx.Row) (*models.EventWithUser, error) {
	var (
		ev        models.EventWithUser
		eventType string
	)
	err := row.Scan(
		&ev.Event.ID, &ev.Event.ItemID, &ev.Event.UserID, &eventType,
		&ev.Event.Date, &ev.Event.CreatedAt,
		&ev.User.FirstName, &ev.User.LastName, &ev.User.Email,
	)
	if err != nil {
		return nil, err
	}
	ev.Event.Type = models.EventType(eventType)
	ev.User.ID = ev.Event.UserID
	return &ev, nil
}
