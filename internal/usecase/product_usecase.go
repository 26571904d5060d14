package usecase

import (
	"context"
	"time"

	"cookbook/internal/domain/entity"
)

type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	Category      string
	StockQuantity int
	Supplier      string
	SKU           string
	Tags          []string
	ReleaseDate   *time.Time
}

// ProductPatch lists the fields to change; nil fields are left as they are.
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *float64
	Category      *string
	StockQuantity *int
	Supplier      *string
	SKU           *string
	Tags          []string
	ReleaseDate   *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.Category == nil &&
		p.StockQuantity == nil && p.Supplier == nil && p.SKU == nil && p.Tags == nil && p.ReleaseDate == nil
}

// ProductUsecase manages the product catalog.
type ProductUsecase interface {
	List(ctx context.Context) ([]*entity.Product, error)
	Get(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, input ProductInput) (*entity.Product, error)
	Update(ctx context.Context, id string, patch ProductPatch) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
