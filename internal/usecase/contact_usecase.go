package usecase

import (
	"context"

	"cookbook/internal/domain/entity"
)

// ContactInput carries contact fields. On update, empty fields are left unchanged.
type ContactInput struct {
	FirstName     string
	LastName      string
	Email         string
	FavoriteColor string
}

// ContactUsecase manages the address book. Contacts have no owner.
type ContactUsecase interface {
	List(ctx context.Context) ([]*entity.Contact, error)
	Get(ctx context.Context, id string) (*entity.Contact, error)
	Create(ctx context.Context, input ContactInput) (*entity.Contact, error)
	Update(ctx context.Context, id string, input ContactInput) (*entity.Contact, error)
	Delete(ctx context.Context, id string) error
}
