package domain

import "errors"

// Sentinel errors for the identity domain. Use errors.Is() to check these.
var (
	// ErrUserNotFound indicates no user matches the presented access token.
	ErrUserNotFound = errors.New("user not found")

	// ErrOrganisationNotFound indicates the user has no primary organisation.
	ErrOrganisationNotFound = errors.New("organisation for user not found")
)
