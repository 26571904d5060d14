package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/repository"
	"cookbook/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestDatabase connects to the server named by COOKBOOK_TEST_MONGO_URI and
// returns a throwaway database that is dropped when the test ends.
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("COOKBOOK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("COOKBOOK_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("cookbook_test_" + uuid.NewString()[:8])
	require.NoError(t, EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

func TestUserRepository_Integration(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{Email: "Ada@Example.com", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	found, err := repo.FindByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "ada@example.com", found.Email)

	err = repo.Create(ctx, &entity.User{Email: "ada@example.com"})
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateAccount))

	// Two unlinked users must coexist under the sparse index.
	require.NoError(t, repo.Create(ctx, &entity.User{Email: "grace@example.com"}))

	linked, err := repo.LinkGoogleID(ctx, user.ID, "google-sub-1", "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "google-sub-1", linked.GoogleID)
	assert.Equal(t, "Ada Lovelace", linked.DisplayName)

	_, err = repo.LinkGoogleID(ctx, user.ID, "google-sub-2", "Other")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))

	byGoogle, err := repo.FindByGoogleID(ctx, "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byGoogle.ID)

	_, err = repo.FindByID(ctx, "not-an-id")
	assert.True(t, errors.Is(err, repository.ErrInvalidID))

	users, err := repo.FindByIDs(ctx, []string{user.ID, "bad"})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLinkGoogleID_KeepsExistingDisplayName(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{Email: "named@example.com", DisplayName: "Chosen Name"}
	require.NoError(t, repo.Create(ctx, user))

	linked, err := repo.LinkGoogleID(ctx, user.ID, "google-sub-9", "Provider Name")
	require.NoError(t, err)
	assert.Equal(t, "Chosen Name", linked.DisplayName)
}

func TestRecipeAndReviewRepositories_Integration(t *testing.T) {
	db := newTestDatabase(t)
	recipes := NewRecipeRepository(db)
	reviews := NewReviewRepository(db)
	categories := NewCategoryRepository(db)
	ctx := context.Background()

	category := &entity.Category{Name: "Breakfast"}
	require.NoError(t, categories.Create(ctx, category))
	assert.False(t, category.CreatedAt.IsZero())
	err := categories.Create(ctx, &entity.Category{Name: "Breakfast"})
	assert.True(t, errors.Is(err, domainerrors.ErrCategoryAlreadyExists))

	author := "665f1c2e8a4b9d0012345678"
	recipe := &entity.Recipe{Title: "Pancakes", CategoryID: category.ID, AuthorID: author}
	require.NoError(t, recipes.Create(ctx, recipe))
	assert.False(t, recipe.CreatedAt.IsZero())

	review := &entity.Review{RecipeID: recipe.ID, AuthorID: author, Rating: 5}
	require.NoError(t, reviews.Create(ctx, review))
	require.NoError(t, recipes.AddReview(ctx, recipe.ID, review.ID))

	stored, err := recipes.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{review.ID}, stored.ReviewIDs)

	require.NoError(t, recipes.RemoveReview(ctx, recipe.ID, review.ID))
	stored, err = recipes.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ReviewIDs)

	removed, err := reviews.DeleteByRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, recipes.Delete(ctx, recipe.ID))
	_, err = recipes.FindByID(ctx, recipe.ID)
	assert.True(t, errors.Is(err, repository.ErrRecipeNotFound))
}

func TestContactAndProductRepositories_Integration(t *testing.T) {
	db := newTestDatabase(t)
	contacts := NewContactRepository(db)
	products := NewProductRepository(db)
	ctx := context.Background()

	contact := &entity.Contact{FirstName: "Jane", LastName: "Doe", Email: "Jane@Example.com", FavoriteColor: "blue"}
	require.NoError(t, contacts.Create(ctx, contact))
	assert.Equal(t, "jane@example.com", contact.Email)

	err := contacts.Create(ctx, &entity.Contact{FirstName: "J", LastName: "D", Email: "jane@example.com", FavoriteColor: "red"})
	assert.True(t, errors.Is(err, domainerrors.ErrContactAlreadyExists))

	contact.FavoriteColor = "green"
	require.NoError(t, contacts.Update(ctx, contact))
	stored, err := contacts.FindByID(ctx, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "green", stored.FavoriteColor)

	require.NoError(t, contacts.Delete(ctx, contact.ID))
	assert.True(t, errors.Is(contacts.Delete(ctx, contact.ID), repository.ErrContactNotFound))

	product := &entity.Product{Name: "Laptop", Description: "Fast", Price: 1299.99, Category: "Electronics", StockQuantity: 5, SKU: "slp-1"}
	require.NoError(t, products.Create(ctx, product))
	assert.Equal(t, "SLP-1", product.SKU)
	assert.False(t, product.CreatedAt.IsZero())

	err = products.Create(ctx, &entity.Product{Name: "Copy", Description: "x", Category: "x", SKU: "SLP-1"})
	assert.True(t, errors.Is(err, domainerrors.ErrProductAlreadyExists))

	list, err := products.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = products.FindByID(ctx, "bad")
	assert.True(t, errors.Is(err, repository.ErrInvalidID))
}
