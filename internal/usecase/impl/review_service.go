package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "cookbook/internal/delivery/context"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type reviewService struct {
	reviewRepo repository.ReviewRepository
	recipeRepo repository.RecipeRepository
	userRepo   repository.UserRepository
	logger     *slog.Logger
	now        func() time.Time
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	ReviewRepo repository.ReviewRepository
	RecipeRepo repository.RecipeRepository
	UserRepo   repository.UserRepository
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		reviewRepo: params.ReviewRepo,
		recipeRepo: params.RecipeRepo,
		userRepo:   params.UserRepo,
		logger:     params.Logger,
		now:        time.Now,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListByRecipe returns the reviews of an existing recipe with author names resolved.
func (srv *reviewService) ListByRecipe(ctx context.Context, recipeID string) ([]*entity.Review, error) {
	if _, err := srv.recipeRepo.FindByID(ctx, recipeID); err != nil {
		return nil, lookupError(err, repository.ErrRecipeNotFound, domainerrors.ErrRecipeNotFound, "failed to find recipe")
	}

	reviews, err := srv.reviewRepo.ListByRecipe(ctx, recipeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	authorIDs := make([]string, 0, len(reviews))
	for _, review := range reviews {
		authorIDs = append(authorIDs, review.AuthorID)
	}

	authors, err := srv.userRepo.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load review authors")
	}

	for _, review := range reviews {
		if author, ok := authors[review.AuthorID]; ok {
			review.AuthorName = author.DisplayName
		}
	}

	return reviews, nil
}

// Create stores the review and records it on the recipe. The recipe is checked
// first so that nothing is persisted for a missing one. If recording on the
// recipe fails, the stored review is removed again.
func (srv *reviewService) Create(ctx context.Context, user *entity.User, input usecase.CreateReviewInput) (*entity.Review, error) {
	if user == nil {
		return nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}

	recipe, err := srv.recipeRepo.FindByID(ctx, input.RecipeID)
	if err != nil {
		return nil, lookupError(err, repository.ErrRecipeNotFound, domainerrors.ErrRecipeNotFound, "failed to find recipe")
	}

	now := srv.now().UTC()
	review := &entity.Review{
		RecipeID:   recipe.ID,
		AuthorID:   user.ID,
		AuthorName: user.DisplayName,
		Rating:     input.Rating,
		Comment:    input.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	if err := srv.recipeRepo.AddReview(ctx, recipe.ID, review.ID); err != nil {
		if delErr := srv.reviewRepo.Delete(ctx, review.ID); delErr != nil {
			srv.log(ctx).Error("Failed to roll back review after recipe update failed",
				slog.String("review_id", review.ID),
				slog.Any("error", delErr))
		}

		return nil, lookupError(err, repository.ErrRecipeNotFound, domainerrors.ErrRecipeNotFound, "failed to attach review to recipe")
	}

	srv.log(ctx).Info("Review created",
		slog.String("review_id", review.ID),
		slog.String("recipe_id", recipe.ID))

	return review, nil
}

func (srv *reviewService) Update(ctx context.Context, user *entity.User, id string, input usecase.UpdateReviewInput) (*entity.Review, error) {
	review, err := srv.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authorizeOwner(user, review, "update", "review"); err != nil {
		return nil, err
	}

	if input.Rating != 0 {
		if err := validateRating(input.Rating); err != nil {
			return nil, err
		}

		review.Rating = input.Rating
	}

	if input.Comment != "" {
		review.Comment = input.Comment
	}

	review.UpdatedAt = srv.now().UTC()

	if err := srv.reviewRepo.Update(ctx, review); err != nil {
		return nil, lookupError(err, repository.ErrReviewNotFound, domainerrors.ErrReviewNotFound, "failed to update review")
	}

	review.AuthorName = user.DisplayName

	return review, nil
}

func (srv *reviewService) Delete(ctx context.Context, user *entity.User, id string) error {
	review, err := srv.find(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeOwner(user, review, "delete", "review"); err != nil {
		return err
	}

	if err := srv.reviewRepo.Delete(ctx, review.ID); err != nil {
		return lookupError(err, repository.ErrReviewNotFound, domainerrors.ErrReviewNotFound, "failed to delete review")
	}

	err = srv.recipeRepo.RemoveReview(ctx, review.RecipeID, review.ID)
	if err != nil && !errors.Is(err, repository.ErrRecipeNotFound) {
		srv.log(ctx).Warn("Failed to detach review from recipe",
			slog.String("review_id", review.ID),
			slog.Any("error", err))
	}

	return nil
}

func (srv *reviewService) find(ctx context.Context, id string) (*entity.Review, error) {
	review, err := srv.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, repository.ErrReviewNotFound, domainerrors.ErrReviewNotFound, "failed to find review")
	}

	return review, nil
}

func validateRating(rating int) error {
	if rating < entity.MinRating || rating > entity.MaxRating {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("rating must be between %d and %d", entity.MinRating, entity.MaxRating)))
	}

	return nil
}
