package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/equiptrack/services/identity/domain/models"
)

// UserRepository is the persistence interface for users and their organisations.
// The domain layer owns this interface; infrastructure implements it.
type UserRepository interface {
	// GetByAccessToken returns the user holding the given bearer token.
	// Returns domain.ErrUserNotFound if no user matches.
	GetByAccessToken(ctx context.Context, token string) (*models.User, error)

	// GetPrimaryOrganisation returns the user's primary organisation.
	// Returns domain.ErrOrganisationNotFound if the user has none.
	GetPrimaryOrganisation(ctx context.Context, userID uuid.UUID) (*models.Organisation, error)
}
