package repository

import (
	"context"
	"errors"

	"cookbook/internal/domain/entity"
)

// ErrCategoryNotFound is returned when no category matches the lookup.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository persists categories. Names are unique; a violating write
// returns domain errors.ErrCategoryAlreadyExists.
type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Category, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
