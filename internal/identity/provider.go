package identity

import (
	"context"
	"errors"
)

// Directory abstracts the organization and user lookups the CLI needs. The Clerk
// Backend API client implements it for live use; StaticDirectory serves fixtures
// when offline.
type Directory interface {
	GetOrganization(ctx context.Context, id string) (*Organization, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]User, error)
	GetUser(ctx context.Context, id string) (*User, error)
}

var (
	// ErrNotFound is returned when an organization or user cannot be located.
	ErrNotFound = errors.New("identity: not found")

	// ErrInvalidOrderBy is returned when a listing is requested with an unknown ordering key.
	ErrInvalidOrderBy = errors.New("identity: invalid order_by")
)
