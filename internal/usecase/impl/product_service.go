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

type productService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
	now         func() time.Time
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *productService) List(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *productService) Get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound, "failed to find product")
	}

	return product, nil
}

// Create requires name, description, category and SKU, and non-negative price and stock.
func (srv *productService) Create(ctx context.Context, input usecase.ProductInput) (*entity.Product, error) {
	now := srv.now().UTC()
	product := &entity.Product{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Price:         input.Price,
		Category:      strings.TrimSpace(input.Category),
		StockQuantity: input.StockQuantity,
		Supplier:      strings.TrimSpace(input.Supplier),
		SKU:           entity.NormalizeSKU(input.SKU),
		Tags:          input.Tags,
		ReleaseDate:   input.ReleaseDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if missing := missingFields(
		"name", product.Name,
		"description", strings.TrimSpace(product.Description),
		"category", product.Category,
		"sku", product.SKU,
	); missing != "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("Missing required fields: " + missing))
	}

	if err := validateStock(product); err != nil {
		return nil, err
	}

	if product.Tags == nil {
		product.Tags = []string{}
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created",
		slog.String("product_id", product.ID),
		slog.String("sku", product.SKU))

	return product, nil
}

func (srv *productService) Update(ctx context.Context, id string, patch usecase.ProductPatch) (*entity.Product, error) {
	if patch.IsEmpty() {
		return nil, errors.WithStack(domainerrors.ErrNoUpdateData)
	}

	product, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := applyProductPatch(product, patch); err != nil {
		return nil, err
	}

	if err := validateStock(product); err != nil {
		return nil, err
	}

	product.UpdatedAt = srv.now().UTC()

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, lookupError(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound, "failed to update product")
	}

	return product, nil
}

func (srv *productService) Delete(ctx context.Context, id string) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		return lookupError(err, repository.ErrProductNotFound, domainerrors.ErrProductNotFound, "failed to delete product")
	}

	srv.log(ctx).Info("Product deleted", slog.String("product_id", id))

	return nil
}

func applyProductPatch(product *entity.Product, patch usecase.ProductPatch) error {
	required := []struct {
		name  string
		value *string
		dst   *string
		norm  func(string) string
	}{
		{"name", patch.Name, &product.Name, strings.TrimSpace},
		{"description", patch.Description, &product.Description, strings.TrimSpace},
		{"category", patch.Category, &product.Category, strings.TrimSpace},
		{"sku", patch.SKU, &product.SKU, entity.NormalizeSKU},
	}

	for _, field := range required {
		if field.value == nil {
			continue
		}

		v := field.norm(*field.value)
		if v == "" {
			return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(field.name + " cannot be empty"))
		}

		*field.dst = v
	}

	if patch.Price != nil {
		product.Price = *patch.Price
	}

	if patch.StockQuantity != nil {
		product.StockQuantity = *patch.StockQuantity
	}

	if patch.Supplier != nil {
		product.Supplier = strings.TrimSpace(*patch.Supplier)
	}

	if patch.Tags != nil {
		product.Tags = patch.Tags
	}

	if patch.ReleaseDate != nil {
		product.ReleaseDate = patch.ReleaseDate
	}

	return nil
}

func validateStock(product *entity.Product) error {
	if product.Price < 0 {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("price must be a non-negative number"))
	}

	if product.StockQuantity < 0 {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("stockQuantity must be a non-negative integer"))
	}

	return nil
}
