// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"cookbook/internal/domain/entity"
)

// ResolveIdentityInput carries the provider identity to map onto a local user.
type ResolveIdentityInput struct {
	GoogleID    string
	Email       string
	DisplayName string
	FirstName   string
	LastName    string
}

// UserDirectory maps external identities onto local users.
type UserDirectory interface {
	// ResolveOrCreate returns the user for the identity, linking an existing
	// email-matched account or creating a new one when needed.
	ResolveOrCreate(ctx context.Context, input ResolveIdentityInput) (*entity.User, error)

	// FindUser returns the user with the given id.
	FindUser(ctx context.Context, id string) (*entity.User, error)
}
