package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ghuser/equiptrack/pkg/database"
	identitydomain "github.com/ghuser/equiptrack/services/identity/domain"
	"github.com/ghuser/equiptrack/services/identity/domain/models"
)

// UserRepository implements repositories.UserRepository against PostgreSQL.
type UserRepository struct {
	db *database.Database
}

// NewUserRepository returns a UserRepository backed by the given connection pool.
func NewUserRepository(db *database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// GetByAccessToken returns the user holding the given bearer token.
// Returns ErrUserNotFound if no user matches.
func (r *UserRepository) GetByAccessToken(ctx context.Context, token string) (*models.User, error) {
	const q = `
		SELECT id, first_name, last_name, email, created_at
		FROM users
		WHERE access_token = $1`

	var u models.User
	err := r.db.Pool().QueryRow(ctx, q, token).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identitydomain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user by token: %w", err)
	}
	return &u, nil
}

// GetPrimaryOrganisation returns the user's primary organisation.
// Returns ErrOrganisationNotFound if the user has no primary membership.
func (r *UserRepository) GetPrimaryOrganisation(ctx context.Context, userID uuid.UUID) (*models.Organisation, error) {
	const q = `
		SELECT o.id, o.name, o.created_at
		FROM organisations o
		JOIN organisation_members m ON m.organisation_id = o.id
		WHERE m.user_id = $1 AND m.is_primary`

	var org models.Organisation
	err := r.db.Pool().QueryRow(ctx, q, userID).Scan(&org.ID, &org.Name, &org.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, identitydomain.ErrOrganisationNotFound
		}
		return nil, fmt.Errorf("query primary organisation: %w", err)
	}
	return &org, nil
}
