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

type categoryRepository struct {
	coll *mongo.Collection
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *mongo.Database) repository.CategoryRepository {
	return &categoryRepository{coll: db.Collection(categoriesCollection)}
}

func (repo *categoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc model.CategoryModel
	if err := repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find category")
	}

	return doc.ToDomain(), nil
}

func (repo *categoryRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*entity.Category, error) {
	categories := make(map[string]*entity.Category, len(ids))

	oids := model.ParseIDs(ids)
	if len(oids) == 0 {
		return categories, nil
	}

	docs, err := repo.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, nil)
	if err != nil {
		return nil, err
	}

	for _, category := range docs {
		categories[category.ID] = category
	}

	return categories, nil
}

// List returns categories ordered by name.
func (repo *categoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	return repo.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := model.NewCategoryModel(category)

	result, err := repo.coll.InsertOne(ctx, categoryM)
	if err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrCategoryAlreadyExists.WrapMessage("create category")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = oid.Hex()
	}
	category.CreatedAt, category.UpdatedAt = categoryM.CreatedAt, categoryM.UpdatedAt

	return nil
}

func (repo *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	oid, err := model.ParseID(category.ID)
	if err != nil {
		return err
	}

	result, err := repo.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        category.Name,
		"description": category.Description,
		"updatedAt":   model.UpdateTime(category.UpdatedAt),
	}})
	if err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrCategoryAlreadyExists.WrapMessage("update category")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update category")
	}
	if result.MatchedCount == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func (repo *categoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}

	result, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete category")
	}
	if result.DeletedCount == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func (repo *categoryRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Category, error) {
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find categories")
	}

	var docs []model.CategoryModel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode categories")
	}

	categories := make([]*entity.Category, 0, len(docs))
	for i := range docs {
		categories = append(categories, docs[i].ToDomain())
	}

	return categories, nil
}
