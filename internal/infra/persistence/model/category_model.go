package model

import (
	"time"

	"cookbook/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryModel mirrors a document in the 'categories' collection.
type CategoryModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (m *CategoryModel) ToDomain() *entity.Category {
	return &entity.Category{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func NewCategoryModel(category *entity.Category) *CategoryModel {
	createdAt, updatedAt := creationTimes(category.CreatedAt, category.UpdatedAt)

	return &CategoryModel{
		Name:        category.Name,
		Description: category.Description,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}
