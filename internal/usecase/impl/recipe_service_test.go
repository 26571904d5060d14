package impl

import (
	"context"
	"testing"
	"time"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = &entity.User{ID: "user-alice", DisplayName: "Alice", Email: "alice@example.com"}
	bob   = &entity.User{ID: "user-bob", DisplayName: "Bob", Email: "bob@example.com"}
)

type recipeFixture struct {
	recipes *memRecipeRepo
	reviews *memReviewRepo
	svc     usecase.RecipeUsecase
}

func newRecipeFixture() *recipeFixture {
	f := &recipeFixture{
		recipes: newMemRecipeRepo(&entity.Recipe{
			ID:         "recipe-pancakes",
			Title:      "Pancakes",
			CategoryID: "category-breakfast",
			AuthorID:   alice.ID,
			Servings:   4,
		}),
		reviews: newMemReviewRepo(
			&entity.Review{ID: "review-1", RecipeID: "recipe-pancakes", AuthorID: bob.ID, Rating: 5},
			&entity.Review{ID: "review-2", RecipeID: "recipe-other", AuthorID: bob.ID, Rating: 3},
		),
	}

	f.svc = NewRecipeService(RecipeServiceParams{
		RecipeRepo:   f.recipes,
		CategoryRepo: newMemCategoryRepo(&entity.Category{ID: "category-breakfast", Name: "Breakfast"}),
		ReviewRepo:   f.reviews,
		UserRepo:     newMemUserRepo(alice, bob),
		Logger:       newDiscardLogger(),
	})

	return f
}

func TestRecipeService_GetResolvesNames(t *testing.T) {
	f := newRecipeFixture()

	detail, err := f.svc.Get(context.Background(), "recipe-pancakes")
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", detail.Title)
	assert.Equal(t, "Alice", detail.AuthorName)
	assert.Equal(t, "Breakfast", detail.CategoryName)

	list, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice", list[0].AuthorName)
}

func TestRecipeService_GetErrors(t *testing.T) {
	f := newRecipeFixture()

	_, err := f.svc.Get(context.Background(), "recipe-404")
	assert.True(t, errors.Is(err, domainerrors.ErrRecipeNotFound))

	_, err = f.svc.Get(context.Background(), "not!an-id")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidID))
}

func TestRecipeService_Create(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	recipe, err := f.svc.Create(ctx, bob, usecase.RecipeInput{
		Title:       "Waffles",
		CategoryID:  "category-breakfast",
		Ingredients: []string{"flour", "eggs"},
	})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, recipe.AuthorID)
	assert.Equal(t, []string{"flour", "eggs"}, recipe.Ingredients)

	_, err = f.svc.Create(ctx, bob, usecase.RecipeInput{Title: "Waffles", CategoryID: "category-404"})
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryNotFound))

	_, err = f.svc.Create(ctx, bob, usecase.RecipeInput{CategoryID: "category-breakfast"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = f.svc.Create(ctx, nil, usecase.RecipeInput{Title: "Waffles", CategoryID: "category-breakfast"})
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestRecipeService_UpdateRequiresOwnership(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	_, err := f.svc.Update(ctx, bob, "recipe-pancakes", usecase.RecipeInput{Title: "Stolen"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "User not authorized to update this recipe", appErr.Message())
	assert.Equal(t, "Pancakes", f.recipes.recipes["recipe-pancakes"].Title)

	updated, err := f.svc.Update(ctx, alice, "recipe-pancakes", usecase.RecipeInput{Title: "Fluffy Pancakes", Servings: 2})
	require.NoError(t, err)
	assert.Equal(t, "Fluffy Pancakes", updated.Title)
	assert.Equal(t, 2, updated.Servings)
	assert.Equal(t, "category-breakfast", updated.CategoryID)
}

func TestRecipeService_MissingBeforeForbidden(t *testing.T) {
	f := newRecipeFixture()

	_, err := f.svc.Update(context.Background(), bob, "recipe-404", usecase.RecipeInput{Title: "x"})
	assert.True(t, errors.Is(err, domainerrors.ErrRecipeNotFound))

	err = f.svc.Delete(context.Background(), bob, "recipe-404")
	assert.True(t, errors.Is(err, domainerrors.ErrRecipeNotFound))
}

func TestRecipeService_DeleteCascadesReviews(t *testing.T) {
	f := newRecipeFixture()
	ctx := context.Background()

	err := f.svc.Delete(ctx, bob, "recipe-pancakes")
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	assert.Contains(t, f.recipes.recipes, "recipe-pancakes")

	require.NoError(t, f.svc.Delete(ctx, alice, "recipe-pancakes"))
	assert.NotContains(t, f.recipes.recipes, "recipe-pancakes")
	assert.NotContains(t, f.reviews.reviews, "review-1")
	assert.Contains(t, f.reviews.reviews, "review-2")
}

func TestRecipeService_StampsTimestamps(t *testing.T) {
	f := newRecipeFixture()
	f.svc.(*recipeService).now = clock(clockStart)
	ctx := context.Background()

	recipe, err := f.svc.Create(ctx, bob, usecase.RecipeInput{Title: "Waffles", CategoryID: "category-breakfast"})
	require.NoError(t, err)
	assert.Equal(t, clockStart, recipe.CreatedAt)
	assert.Equal(t, clockStart, recipe.UpdatedAt)
	assert.Equal(t, clockStart, f.recipes.recipes[recipe.ID].CreatedAt)

	updated, err := f.svc.Update(ctx, bob, recipe.ID, usecase.RecipeInput{Servings: 6})
	require.NoError(t, err)
	assert.Equal(t, clockStart, updated.CreatedAt)
	assert.Equal(t, clockStart.Add(time.Minute), updated.UpdatedAt)
	assert.Equal(t, clockStart.Add(time.Minute), f.recipes.recipes[recipe.ID].UpdatedAt)
}
