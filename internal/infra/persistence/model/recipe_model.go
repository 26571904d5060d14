package model

import (
	"time"

	"cookbook/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipeModel mirrors a document in the 'recipes' collection.
type RecipeModel struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Title        string               `bson:"title"`
	Description  string               `bson:"description"`
	Ingredients  []string             `bson:"ingredients"`
	Instructions []string             `bson:"instructions"`
	Category     primitive.ObjectID   `bson:"category"`
	Author       primitive.ObjectID   `bson:"author"`
	PrepTime     int                  `bson:"prepTime"`
	CookTime     int                  `bson:"cookTime"`
	Servings     int                  `bson:"servings"`
	ImageURL     string               `bson:"imageUrl,omitempty"`
	Reviews      []primitive.ObjectID `bson:"reviews"`
	CreatedAt    time.Time            `bson:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt"`
}

func (m *RecipeModel) ToDomain() *entity.Recipe {
	reviewIDs := make([]string, 0, len(m.Reviews))
	for _, id := range m.Reviews {
		reviewIDs = append(reviewIDs, id.Hex())
	}

	return &entity.Recipe{
		ID:           m.ID.Hex(),
		Title:        m.Title,
		Description:  m.Description,
		Ingredients:  m.Ingredients,
		Instructions: m.Instructions,
		CategoryID:   m.Category.Hex(),
		AuthorID:     m.Author.Hex(),
		PrepTime:     m.PrepTime,
		CookTime:     m.CookTime,
		Servings:     m.Servings,
		ImageURL:     m.ImageURL,
		ReviewIDs:    reviewIDs,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// NewRecipeModel maps a domain recipe for insertion. Reviews always start empty.
func NewRecipeModel(recipe *entity.Recipe) (*RecipeModel, error) {
	categoryID, err := ParseID(recipe.CategoryID)
	if err != nil {
		return nil, err
	}

	authorID, err := ParseID(recipe.AuthorID)
	if err != nil {
		return nil, err
	}

	createdAt, updatedAt := creationTimes(recipe.CreatedAt, recipe.UpdatedAt)

	return &RecipeModel{
		Title:        recipe.Title,
		Description:  recipe.Description,
		Ingredients:  nonNil(recipe.Ingredients),
		Instructions: nonNil(recipe.Instructions),
		Category:     categoryID,
		Author:       authorID,
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		Servings:     recipe.Servings,
		ImageURL:     recipe.ImageURL,
		Reviews:      []primitive.ObjectID{},
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
