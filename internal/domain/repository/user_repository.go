// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"cookbook/internal/domain/entity"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidID is returned when an id is not in the store's identifier format.
	ErrInvalidID = errors.New("invalid id")
)

// UserRepository defines the standard operations for user persistence.
// Emails are matched case-insensitively; implementations store them lower-cased.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByGoogleID retrieves the user linked to the given provider subject.
	FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByIDs returns the users that exist among ids, keyed by id.
	FindByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)

	// Create persists a new user and assigns its ID. A duplicate email or
	// provider subject returns domain errors.ErrDuplicateAccount.
	Create(ctx context.Context, user *entity.User) error

	// LinkGoogleID attaches a provider subject to an unlinked user and fills the
	// display name when it is empty. Returns ErrUserNotFound when the user is
	// missing or already linked.
	LinkGoogleID(ctx context.Context, id, googleID, displayName string) (*entity.User, error)
}
