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

type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
	now          func() time.Time
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *categoryService) List(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *categoryService) Get(ctx context.Context, id string) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "failed to find category")
	}

	return category, nil
}

func (srv *categoryService) Create(ctx context.Context, input usecase.CategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("name is required"))
	}

	now := srv.now().UTC()
	category := &entity.Category{
		Name:        name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	srv.log(ctx).Info("Category created", slog.String("category_id", category.ID))

	return category, nil
}

func (srv *categoryService) Update(ctx context.Context, id string, input usecase.CategoryInput) (*entity.Category, error) {
	category, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}

	if input.Description != "" {
		category.Description = input.Description
	}

	category.UpdatedAt = srv.now().UTC()

	if err := srv.categoryRepo.Update(ctx, category); err != nil {
		return nil, lookupError(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "failed to update category")
	}

	return category, nil
}

func (srv *categoryService) Delete(ctx context.Context, id string) error {
	if err := srv.categoryRepo.Delete(ctx, id); err != nil {
		return lookupError(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "failed to delete category")
	}

	srv.log(ctx).Info("Category deleted", slog.String("category_id", id))

	return nil
}
