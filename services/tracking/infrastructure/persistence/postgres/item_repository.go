package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/equiptrack/pkg/database"
	trackingdomain "github.com/ghuser/equiptrack/services/tracking/domain"
	"github.com/ghuser/equiptrack/services/tracking/domain/models"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db *database.Database
}

// NewItemRepository returns an ItemRepository backed by the given connection pool.
func NewItemRepository(db *database.Database) *ItemRepository {
	return &ItemRepository{db: db}
}

// FindByDeviceID retrieves an item by its composite key.
// Returns ErrItemNotFound when no item matches.
func (r *ItemRepository) FindByDeviceID(ctx context.Context, orgID uuid.UUID, domain models.Domain, deviceID models.DeviceID) (*models.Item, error) {
	const q = `
		SELECT id, organisation_id, domain, device_id, created_at
		FROM items
		WHERE organisation_id = $1 AND domain = $2 AND device_id = $3`

	item, err := scanItem(r.db.Pool().QueryRow(ctx, q, orgID, domain.String(), deviceID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, trackingdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// Create persists a new Item. The unique index on
// (organisation_id, domain, device_id) closes the concurrent find-or-create
// race; violations surface as ErrItemAlreadyExists.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	const q = `
		INSERT INTO items (id, organisation_id, domain, device_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Pool().Exec(ctx, q,
		item.ID, item.OrgID, item.Domain.String(), item.DeviceID.String(), item.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return trackingdomain.ErrItemAlreadyExists
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// FindByOrg retrieves all items for the organisation and domain.
// Ids are time-ordered, so ordering by id yields persistence order.
func (r *ItemRepository) FindByOrg(ctx context.Context, orgID uuid.UUID, domain models.Domain) ([]*models.Item, error) {
	const q = `
		SELECT id, organisation_id, domain, device_id, created_at
		FROM items
		WHERE organisation_id = $1 AND domain = $2
		ORDER BY id`

	rows, err := r.db.Pool().Query(ctx, q, orgID, domain.String())
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func scanItem(row pgx.Row) (*models.Item, error) {
	var (
		item     models.Item
		domain   string
		deviceID string
	)
	if err := row.Scan(&item.ID, &item.OrgID, &domain, &deviceID, &item.CreatedAt); err != nil {
		return nil, err
	}
	item.Domain = models.Domain(domain)
	item.DeviceID = models.DeviceID(deviceID)
	return &item, nil
}
