package usecase

import (
	"context"

	"cookbook/internal/domain/entity"
)

type CategoryInput struct {
	Name        string
	Description string
}

// CategoryUsecase manages categories. Categories have no owner; any
// authenticated user may change them.
type CategoryUsecase interface {
	List(ctx context.Context) ([]*entity.Category, error)
	Get(ctx context.Context, id string) (*entity.Category, error)
	Create(ctx context.Context, input CategoryInput) (*entity.Category, error)
	Update(ctx context.Context, id string, input CategoryInput) (*entity.Category, error)
	Delete(ctx context.Context, id string) error
}
