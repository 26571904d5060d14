package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type recipeService struct {
	recipeRepo   repository.RecipeRepository
	categoryRepo repository.CategoryRepository
	reviewRepo   repository.ReviewRepository
	userRepo     repository.UserRepository
	logger       *slog.Logger
	now          func() time.Time
}

// RecipeServiceParams holds dependencies for RecipeService, injected by Fx.
type RecipeServiceParams struct {
	fx.In

	RecipeRepo   repository.RecipeRepository
	CategoryRepo repository.CategoryRepository
	ReviewRepo   repository.ReviewRepository
	UserRepo     repository.UserRepository
	Logger       *slog.Logger
}

// NewRecipeService is the constructor for recipeService.
func NewRecipeService(params RecipeServiceParams) usecase.RecipeUsecase {
	return &recipeService{
		recipeRepo:   params.RecipeRepo,
		categoryRepo: params.CategoryRepo,
		reviewRepo:   params.ReviewRepo,
		userRepo:     params.UserRepo,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *recipeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns every recipe with its author and category names resolved.
func (srv *recipeService) List(ctx context.Context) ([]*entity.RecipeDetail, error) {
	recipes, err := srv.recipeRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recipes")
	}

	return srv.withDetails(ctx, recipes)
}

func (srv *recipeService) Get(ctx context.Context, id string) (*entity.RecipeDetail, error) {
	recipe, err := srv.find(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := srv.withDetails(ctx, []*entity.Recipe{recipe})
	if err != nil {
		return nil, err
	}

	return details[0], nil
}

func (srv *recipeService) Create(ctx context.Context, user *entity.User, input usecase.RecipeInput) (*entity.Recipe, error) {
	if user == nil {
		return nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("title is required"))
	}

	if err := srv.requireCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	now := srv.now().UTC()
	recipe := &entity.Recipe{AuthorID: user.ID, CreatedAt: now, UpdatedAt: now}
	applyRecipeInput(recipe, input)

	if err := srv.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, errors.Wrap(err, "failed to create recipe")
	}

	srv.log(ctx).Info("Recipe created",
		slog.String("recipe_id", recipe.ID),
		slog.String("author_id", user.ID))

	return recipe, nil
}

func (srv *recipeService) Update(ctx context.Context, user *entity.User, id string, input usecase.RecipeInput) (*entity.Recipe, error) {
	recipe, err := srv.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeOwner(user, recipe, "update", "recipe"); err != nil {
		return nil, err
	}

	if input.CategoryID != "" && input.CategoryID != recipe.CategoryID {
		if err := srv.requireCategory(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	applyRecipeInput(recipe, input)
	recipe.UpdatedAt = srv.now().UTC()

	if err := srv.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, lookupError(err, repository.ErrRecipeNotFound, domainerrors.ErrRecipeNotFound, "failed to update recipe")
	}

	return recipe, nil
}

// Delete removes the recipe and then its reviews.
func (srv *recipeService) Delete(ctx context.Context, user *entity.User, id string) error {
	recipe, err := srv.find(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeOwner(user, recipe, "delete", "recipe"); err != nil {
		return err
	}

	if err := srv.recipeRepo.Delete(ctx, recipe.ID); err != nil {
		return lookupError(err, repository.ErrRecipeNotFound, domainerrors.ErrRecipeNotFound, "failed to delete recipe")
	}

	removed, err := srv.reviewRepo.DeleteByRecipe(ctx, recipe.ID)
	if err != nil {
		// The recipe is gone; orphaned reviews are unreachable through the API.
		srv.log(ctx).Error("Failed to delete reviews of deleted recipe",
			slog.String("recipe_id", recipe.ID),
			slog.Any("error", err))

		return nil
	}

	srv.log(ctx).Info("Recipe deleted",
		slog.String("recipe_id", recipe.ID),
		slog.Int64("reviews_removed", removed))

	return nil
}

func (srv *recipeService) find(ctx context.Context, id string) (*entity.Recipe, error) {
	recipe, err := srv.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, repository.ErrRecipeNotFound, domainerrors.ErrRecipeNotFound, "failed to find recipe")
	}

	return recipe, nil
}

func (srv *recipeService) requireCategory(ctx context.Context, id string) error {
	if id == "" {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("category is required"))
	}

	if _, err := srv.categoryRepo.FindByID(ctx, id); err != nil {
		return lookupError(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "failed to find category")
	}

	return nil
}

func (srv *recipeService) withDetails(ctx context.Context, recipes []*entity.Recipe) ([]*entity.RecipeDetail, error) {
	authorIDs := make([]string, 0, len(recipes))
	categoryIDs := make([]string, 0, len(recipes))

	for _, recipe := range recipes {
		authorIDs = append(authorIDs, recipe.AuthorID)
		categoryIDs = append(categoryIDs, recipe.CategoryID)
	}

	authors, err := srv.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recipe authors")
	}

	categories, err := srv.categoryRepo.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recipe categories")
	}

	details := make([]*entity.RecipeDetail, 0, len(recipes))
	for _, recipe := range recipes {
		detail := &entity.RecipeDetail{Recipe: recipe}
		if author, ok := authors[recipe.AuthorID]; ok {
			detail.AuthorName = author.DisplayName
		}

		if category, ok := categories[recipe.CategoryID]; ok {
			detail.CategoryName = category.Name
		}

		details = append(details, detail)
	}

	return details, nil
}

func applyRecipeInput(recipe *entity.Recipe, input usecase.RecipeInput) {
	if title := strings.TrimSpace(input.Title); title != "" {
		recipe.Title = title
	}

	if input.Description != "" {
		recipe.Description = input.Description
	}

	if input.Ingredients != nil {
		recipe.Ingredients = input.Ingredients
	}

	if input.Instructions != nil {
		recipe.Instructions = input.Instructions
	}

	if input.CategoryID != "" {
		recipe.CategoryID = input.CategoryID
	}

	if input.PrepTime > 0 {
		recipe.PrepTime = input.PrepTime
	}

	if input.CookTime > 0 {
		recipe.CookTime = input.CookTime
	}

	if input.Servings > 0 {
		recipe.Servings = input.Servings
	}

	if input.ImageURL != "" {
		recipe.ImageURL = input.ImageURL
	}
}
