package repository

import (
	"context"
	"errors"

	"cookbook/internal/domain/entity"
)

// ErrContactNotFound is returned when no contact matches the lookup.
var ErrContactNotFound = errors.New("contact not found")

// ContactRepository persists contacts. A write that repeats another contact's
// email returns domain errors.ErrContactAlreadyExists.
type ContactRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Contact, error)
	List(ctx context.Context) ([]*entity.Contact, error)
	Create(ctx context.Context, contact *entity.Contact) error
	Update(ctx context.Context, contact *entity.Contact) error
	Delete(ctx context.Context, id string) error
}
