package mongodb

import (
	"context"

	"cookbook/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes that back the uniqueness rules. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("uniq_email").SetUnique(true),
			},
			{
				// Sparse so that any number of unlinked users may coexist.
				Keys:    bson.D{{Key: "googleId", Value: 1}},
				Options: options.Index().SetName("uniq_google_id").SetUnique(true).SetSparse(true),
			},
		},
		categoriesCollection: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetName("uniq_name").SetUnique(true),
			},
		},
		recipesCollection: {
			{Keys: bson.D{{Key: "author", Value: 1}}, Options: options.Index().SetName("by_author")},
			{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("by_category")},
		},
		reviewsCollection: {
			{Keys: bson.D{{Key: "recipe", Value: 1}}, Options: options.Index().SetName("by_recipe")},
		},
		contactsCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("uniq_email").SetUnique(true),
			},
		},
		productsCollection: {
			{
				Keys:    bson.D{{Key: "sku", Value: 1}},
				Options: options.Index().SetName("uniq_sku").SetUnique(true),
			},
		},
	}

	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "failed to create indexes on %s", collection)
		}
	}

	return nil
}
