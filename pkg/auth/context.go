package auth

import (
	"context"
	"errors"

	"github.com/ghuser/equiptrack/services/identity/domain/models"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const (
	userKey contextKey = "user"
	orgKey  contextKey = "organisation"
)

// ErrIdentityNotFound is returned when no resolved user or organisation
// exists in the request context. Handlers should return 404 when this occurs.
var ErrIdentityNotFound = errors.New("identity not found in context")

// UserFromCtx extracts the authenticated user from the request context.
// Returns ErrIdentityNotFound if no user is set (unauthenticated request).
func UserFromCtx(ctx context.Context) (*models.User, error) {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok || user == nil {
		return nil, ErrIdentityNotFound
	}
	return user, nil
}

// OrgFromCtx extracts the authenticated user's primary organisation from the
// request context. Returns ErrIdentityNotFound if none is set.
func OrgFromCtx(ctx context.Context) (*models.Organisation, error) {
	org, ok := ctx.Value(orgKey).(*models.Organisation)
	if !ok || org == nil {
		return nil, ErrIdentityNotFound
	}
	return org, nil
}

// WithIdentity returns a new context carrying the resolved user and organisation.
// Used by the auth middleware after token resolution.
func WithIdentity(ctx context.Context, user *models.User, org *models.Organisation) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, orgKey, org)
}
