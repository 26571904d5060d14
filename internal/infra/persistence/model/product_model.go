package model

import (
	"time"

	"cookbook/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductModel mirrors a document in the 'products' collection.
type ProductModel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Price         float64            `bson:"price"`
	Category      string             `bson:"category"`
	StockQuantity int                `bson:"stockQuantity"`
	Supplier      string             `bson:"supplier,omitempty"`
	SKU           string             `bson:"sku"`
	Tags          []string           `bson:"tags"`
	ReleaseDate   *time.Time         `bson:"releaseDate,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (m *ProductModel) ToDomain() *entity.Product {
	return &entity.Product{
		ID:            m.ID.Hex(),
		Name:          m.Name,
		Description:   m.Description,
		Price:         m.Price,
		Category:      m.Category,
		StockQuantity: m.StockQuantity,
		Supplier:      m.Supplier,
		SKU:           m.SKU,
		Tags:          nonNil(m.Tags),
		ReleaseDate:   m.ReleaseDate,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// NewProductModel maps a domain product for insertion. The SKU is stored upper-cased.
func NewProductModel(product *entity.Product) *ProductModel {
	createdAt, updatedAt := creationTimes(product.CreatedAt, product.UpdatedAt)

	return &ProductModel{
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		Supplier:      product.Supplier,
		SKU:           entity.NormalizeSKU(product.SKU),
		Tags:          nonNil(product.Tags),
		ReleaseDate:   product.ReleaseDate,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}
