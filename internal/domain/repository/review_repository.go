package repository

import (
	"context"
	"errors"

	"cookbook/internal/domain/entity"
)

// ErrReviewNotFound is returned when no review matches the lookup.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository persists reviews.
type ReviewRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Review, error)
	ListByRecipe(ctx context.Context, recipeID string) ([]*entity.Review, error)
	Create(ctx context.Context, review *entity.Review) error
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error
	// DeleteByRecipe removes every review of a recipe and returns how many were removed.
	DeleteByRecipe(ctx context.Context, recipeID string) (int64, error)
}
