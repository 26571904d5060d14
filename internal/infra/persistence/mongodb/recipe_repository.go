package mongodb

import (
	"context"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/infra/persistence/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type recipeRepository struct {
	coll *mongo.Collection
}

// NewRecipeRepository is the constructor for recipeRepository.
func NewRecipeRepository(db *mongo.Database) repository.RecipeRepository {
	return &recipeRepository{coll: db.Collection(recipesCollection)}
}

func (repo *recipeRepository) FindByID(ctx context.Context, id string) (*entity.Recipe, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc model.RecipeModel
	if err := repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrRecipeNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find recipe")
	}

	return doc.ToDomain(), nil
}

// List returns all recipes, newest first.
func (repo *recipeRepository) List(ctx context.Context) ([]*entity.Recipe, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list recipes")
	}

	var docs []model.RecipeModel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode recipes")
	}

	recipes := make([]*entity.Recipe, 0, len(docs))
	for i := range docs {
		recipes = append(recipes, docs[i].ToDomain())
	}

	return recipes, nil
}

func (repo *recipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	recipeM, err := model.NewRecipeModel(recipe)
	if err != nil {
		return err
	}

	result, err := repo.coll.InsertOne(ctx, recipeM)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create recipe")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		recipe.ID = oid.Hex()
	}
	recipe.ReviewIDs = []string{}
	recipe.CreatedAt, recipe.UpdatedAt = recipeM.CreatedAt, recipeM.UpdatedAt

	return nil
}

// Update rewrites the editable fields. Author and review list are never touched here.
func (repo *recipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	oid, err := model.ParseID(recipe.ID)
	if err != nil {
		return err
	}

	categoryID, err := model.ParseID(recipe.CategoryID)
	if err != nil {
		return err
	}

	result, err := repo.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":        recipe.Title,
		"description":  recipe.Description,
		"ingredients":  recipe.Ingredients,
		"instructions": recipe.Instructions,
		"category":     categoryID,
		"prepTime":     recipe.PrepTime,
		"cookTime":     recipe.CookTime,
		"servings":     recipe.Servings,
		"imageUrl":     recipe.ImageURL,
		"updatedAt":    model.UpdateTime(recipe.UpdatedAt),
	}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update recipe")
	}
	if result.MatchedCount == 0 {
		return repository.ErrRecipeNotFound
	}

	return nil
}

func (repo *recipeRepository) Delete(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}

	result, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete recipe")
	}
	if result.DeletedCount == 0 {
		return repository.ErrRecipeNotFound
	}

	return nil
}

func (repo *recipeRepository) AddReview(ctx context.Context, recipeID, reviewID string) error {
	return repo.updateReviews(ctx, recipeID, reviewID, "$addToSet")
}

func (repo *recipeRepository) RemoveReview(ctx context.Context, recipeID, reviewID string) error {
	return repo.updateReviews(ctx, recipeID, reviewID, "$pull")
}

func (repo *recipeRepository) updateReviews(ctx context.Context, recipeID, reviewID, operator string) error {
	recipeOID, err := model.ParseID(recipeID)
	if err != nil {
		return err
	}

	reviewOID, err := model.ParseID(reviewID)
	if err != nil {
		return err
	}

	result, err := repo.coll.UpdateOne(ctx,
		bson.M{"_id": recipeOID},
		bson.M{operator: bson.M{"reviews": reviewOID}},
	)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update recipe reviews")
	}
	if result.MatchedCount == 0 {
		return repository.ErrRecipeNotFound
	}

	return nil
}
