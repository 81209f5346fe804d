package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ghuser/equiptrack/pkg/database"
	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// BulkRepository implements repositories.BulkRepository against PostgreSQL.
type BulkRepository struct {
	db *database.Database
}

// NewBulkRepository returns a BulkRepository backed by the given connection pool.
func NewBulkRepository(db *database.Database) *BulkRepository {
	return &BulkRepository{db: db}
}

// Create persists the Bulk summary row and its ordered event references in
// one transaction. The position column preserves request order.
func (r *BulkRepository) Create(ctx context.Context, bulk *models.Bulk) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		const insertBulk = `
			INSERT INTO event_bulks (id, organisation_id, domain, event_type, battery_count, user_id, date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

		_, err := tx.Exec(ctx, insertBulk,
			bulk.ID, bulk.OrgID, bulk.Domain.String(), bulk.EventType.String(),
			bulk.BatteryCount, bulk.UserID, bulk.Date, bulk.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert bulk: %w", err)
		}

		const insertRef = `
			INSERT INTO event_bulk_events (bulk_id, event_id, position)
			VALUES ($1, $2, $3)`

		for i, eventID := range bulk.EventIDs {
			if _, err := tx.Exec(ctx, insertRef, bulk.ID, eventID, i); err != nil {
				return fmt.Errorf("insert bulk event ref %d: %w", i, err)
			}
		}
		return nil
	})
}

// FindByOrg retrieves all bulks for the organisation and domain, newest batch
// first, with events, owning items, and the acting user resolved.
func (r *BulkRepository) FindByOrg(ctx context.Context, orgID uuid.UUID, domain models.Domain) ([]*models.BulkWithDetails, error) {
	const q = `
		SELECT b.id, b.organisation_id, b.domain, b.event_type, b.battery_count,
		       b.user_id, b.date, b.created_at,
		       u.first_name, u.last_name, u.email
		FROM event_bulks b
		JOIN users u ON u.id = b.user_id
		WHERE b.organisation_id = $1 AND b.domain = $2
		ORDER BY b.date DESC, b.id DESC`

	rows, err := r.db.Pool().Query(ctx, q, orgID, domain.String())
	if err != nil {
		return nil, fmt.Errorf("query bulks: %w", err)
	}
	defer rows.Close()

	var (
		bulks   []*models.BulkWithDetails
		bulkIDs []uuid.UUID
		byID    = make(map[uuid.UUID]*models.BulkWithDetails)
	)
	for rows.Next() {
		var (
			b         models.BulkWithDetails
			domainStr string
			eventType string
		)
		err := rows.Scan(
			&b.Bulk.ID, &b.Bulk.OrgID, &domainStr, &eventType, &b.Bulk.BatteryCount,
			&b.Bulk.UserID, &b.Bulk.Date, &b.Bulk.CreatedAt,
			&b.User.FirstName, &b.User.LastName, &b.User.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan bulk: %w", err)
		}
		b.Bulk.Domain = models.Domain(domainStr)
		b.Bulk.EventType = models.EventType(eventType)
		b.User.ID = b.Bulk.UserID
		bulks = append(bulks, &b)
		bulkIDs = append(bulkIDs, b.Bulk.ID)
		byID[b.Bulk.ID] = &b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bulks: %w", err)
	}
	if len(bulks) == 0 {
		return bulks, nil
	}

	if err := r.attachEntries(ctx, bulkIDs, byID); err != nil {
		return nil, err
	}
	return bulks, nil
}

// attachEntries loads all events of the given bulks in one query and fans
// them out to their bulks in position order.
func (r *BulkRepository) attachEntries(ctx context.Context, bulkIDs []uuid.UUID, byID map[uuid.UUID]*models.BulkWithDetails) error {
	const q = `
		SELECT be.bulk_id, e.id, e.item_id, e.user_id, e.event_type, e.date, e.created_at,
		       i.device_id
		FROM event_bulk_events be
		JOIN item_events e ON e.id = be.event_id
		JOIN items i ON i.id = e.item_id
		WHERE be.bulk_id = ANY($1)
		ORDER BY be.bulk_id, be.position`

	rows, err := r.db.Pool().Query(ctx, q, bulkIDs)
	if err != nil {
		return fmt.Errorf("query bulk events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bulkID    uuid.UUID
			entry     models.BulkEntry
			eventType string
			deviceID  string
		)
		err := rows.Scan(
			&bulkID, &entry.Event.ID, &entry.Event.ItemID, &entry.Event.UserID,
			&eventType, &entry.Event.Date, &entry.Event.CreatedAt, &deviceID,
		)
		if err != nil {
			return fmt.Errorf("scan bulk event: %w", err)
		}
		entry.Event.Type = models.EventType(eventType)
		entry.DeviceID = models.DeviceID(deviceID)

		bulk := byID[bulkID]
		bulk.Entries = append(bulk.Entries, entry)
		bulk.Bulk.EventIDs = append(bulk.Bulk.EventIDs, entry.Event.ID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate bulk events: %w", err)
	}
	return nil
}
