package repository

import (
	"context"
	"errors"

	"cookbook/internal/domain/entity"
)

// ErrRecipeNotFound is returned when no recipe matches the lookup.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeRepository persists recipes.
type RecipeRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Recipe, error)
	List(ctx context.Context) ([]*entity.Recipe, error)
	Create(ctx context.Context, recipe *entity.Recipe) error
	// Update replaces the mutable fields of an existing recipe.
	Update(ctx context.Context, recipe *entity.Recipe) error
	Delete(ctx context.Context, id string) error

	// AddReview appends a review id to the recipe's review list.
	AddReview(ctx context.Context, recipeID, reviewID string) error
	// RemoveReview pulls a review id from the recipe's review list.
	RemoveReview(ctx context.Context, recipeID, reviewID string) error
}
