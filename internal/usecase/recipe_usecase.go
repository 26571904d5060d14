package usecase

import (
	"context"

	"cookbook/internal/domain/entity"
)

// RecipeInput is the editable part of a recipe.
type RecipeInput struct {
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	CategoryID   string
	PrepTime     int
	CookTime     int
	Servings     int
	ImageURL     string
}

// RecipeUsecase manages recipes. Mutations of an existing recipe are limited to its author.
type RecipeUsecase interface {
	List(ctx context.Context) ([]*entity.RecipeDetail, error)
	Get(ctx context.Context, id string) (*entity.RecipeDetail, error)
	Create(ctx context.Context, user *entity.User, input RecipeInput) (*entity.Recipe, error)
	Update(ctx context.Context, user *entity.User, id string, input RecipeInput) (*entity.Recipe, error)
	Delete(ctx context.Context, user *entity.User, id string) error
}
