package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated actor. Resolved from a bearer access token; the
// tracking core only ever sees already-resolved users.
type User struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}

// DisplayName returns "<firstName> <lastName>" for logs and reports.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Organisation is the tenant boundary. Every item and bulk record is scoped
// to exactly one organisation.
type Organisation struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
