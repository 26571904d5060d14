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

type reviewRepository struct {
	coll *mongo.Collection
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &reviewRepository{coll: db.Collection(reviewsCollection)}
}

func (repo *reviewRepository) FindByID(ctx context.Context, id string) (*entity.Review, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc model.ReviewModel
	if err := repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find review")
	}

	return doc.ToDomain(), nil
}

// ListByRecipe returns the reviews of one recipe, newest first.
func (repo *reviewRepository) ListByRecipe(ctx context.Context, recipeID string) ([]*entity.Review, error) {
	oid, err := model.ParseID(recipeID)
	if err != nil {
		return nil, err
	}

	cursor, err := repo.coll.Find(ctx, bson.M{"recipe": oid}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list reviews")
	}

	var docs []model.ReviewModel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode reviews")
	}

	reviews := make([]*entity.Review, 0, len(docs))
	for i := range docs {
		reviews = append(reviews, docs[i].ToDomain())
	}

	return reviews, nil
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM, err := model.NewReviewModel(review)
	if err != nil {
		return err
	}

	result, err := repo.coll.InsertOne(ctx, reviewM)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid.Hex()
	}
	review.CreatedAt, review.UpdatedAt = reviewM.CreatedAt, reviewM.UpdatedAt

	return nil
}

func (repo *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	oid, err := model.ParseID(review.ID)
	if err != nil {
		return err
	}

	result, err := repo.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"rating":    review.Rating,
		"comment":   review.Comment,
		"updatedAt": model.UpdateTime(review.UpdatedAt),
	}})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update review")
	}
	if result.MatchedCount == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

func (repo *reviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}

	result, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete review")
	}
	if result.DeletedCount == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

func (repo *reviewRepository) DeleteByRecipe(ctx context.Context, recipeID string) (int64, error) {
	oid, err := model.ParseID(recipeID)
	if err != nil {
		return 0, err
	}

	result, err := repo.coll.DeleteMany(ctx, bson.M{"recipe": oid})
	if err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to delete recipe reviews")
	}

	return result.DeletedCount, nil
}
