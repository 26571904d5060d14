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

type productRepository struct {
	coll *mongo.Collection
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepository{coll: db.Collection(productsCollection)}
}

func (repo *productRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc model.ProductModel
	if err := repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrProductNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find product")
	}

	return doc.ToDomain(), nil
}

// List returns products newest first.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list products")
	}

	var docs []model.ProductModel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode products")
	}

	products := make([]*entity.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].ToDomain())
	}

	return products, nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := model.NewProductModel(product)

	result, err := repo.coll.InsertOne(ctx, productM)
	if err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrProductAlreadyExists.WrapMessage("create product")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid.Hex()
	}
	product.SKU = productM.SKU
	product.Tags = productM.Tags
	product.CreatedAt, product.UpdatedAt = productM.CreatedAt, productM.UpdatedAt

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	oid, err := model.ParseID(product.ID)
	if err != nil {
		return err
	}

	product.SKU = entity.NormalizeSKU(product.SKU)
	set := bson.M{
		"name":          product.Name,
		"description":   product.Description,
		"price":         product.Price,
		"category":      product.Category,
		"stockQuantity": product.StockQuantity,
		"supplier":      product.Supplier,
		"sku":           product.SKU,
		"tags":          product.Tags,
		"updatedAt":     model.UpdateTime(product.UpdatedAt),
	}
	if product.ReleaseDate != nil {
		set["releaseDate"] = product.ReleaseDate
	}

	result, err := repo.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrProductAlreadyExists.WrapMessage("update product")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}
	if result.MatchedCount == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}

	result, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete product")
	}
	if result.DeletedCount == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}
