package usecase

import (
	"context"

	"cookbook/internal/domain/entity"
)

type CreateReviewInput struct {
	RecipeID string
	Rating   int
	Comment  string
}

type UpdateReviewInput struct {
	Rating  int
	Comment string
}

// ReviewUsecase manages reviews. A review can only be left on an existing
// recipe, and only its author may change or remove it.
type ReviewUsecase interface {
	ListByRecipe(ctx context.Context, recipeID string) ([]*entity.Review, error)
	Create(ctx context.Context, user *entity.User, input CreateReviewInput) (*entity.Review, error)
	Update(ctx context.Context, user *entity.User, id string, input UpdateReviewInput) (*entity.Review, error)
	Delete(ctx context.Context, user *entity.User, id string) error
}
