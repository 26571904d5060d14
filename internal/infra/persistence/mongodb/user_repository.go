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

// userRepository implements repository.UserRepository on the 'users' collection.
type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	return repo.findOne(ctx, bson.M{"_id": oid}, "failed to find user by id")
}

func (repo *userRepository) FindByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	if googleID == "" {
		return nil, repository.ErrUserNotFound
	}

	return repo.findOne(ctx, bson.M{"googleId": googleID}, "failed to find user by google id")
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"email": entity.NormalizeEmail(email)}, "failed to find user by email")
}

func (repo *userRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	users := make(map[string]*entity.User, len(ids))

	oids := model.ParseIDs(ids)
	if len(oids) == 0 {
		return users, nil
	}

	cursor, err := repo.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find users by ids")
	}

	var docs []model.UserModel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode users")
	}

	for i := range docs {
		user := docs[i].ToDomain()
		users[user.ID] = user
	}

	return users, nil
}

// Create inserts the user and fills in the generated id.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := model.NewUserModel(user)

	result, err := repo.coll.InsertOne(ctx, userM)
	if err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrDuplicateAccount.WrapMessage("email or google id already registered")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	userM.ID, _ = result.InsertedID.(primitive.ObjectID)
	user.ID = userM.ID.Hex()
	user.Email = userM.Email
	user.CreatedAt = userM.CreatedAt

	return nil
}

// LinkGoogleID only matches unlinked users, so two racing logins cannot both link.
func (repo *userRepository) LinkGoogleID(ctx context.Context, id, googleID, displayName string) (*entity.User, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"_id":      oid,
		"googleId": bson.M{"$exists": false},
	}

	// Fill the display name only when the stored one is empty.
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"googleId": googleID,
			"displayName": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{bson.M{"$ifNull": bson.A{"$displayName", ""}}, ""}},
				bson.M{"$literal": displayName},
				"$displayName",
			}},
		}}},
	}

	var doc model.UserModel
	err = repo.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrUserNotFound
		}
		if isDuplicateKey(err) {
			return nil, domainerrors.ErrDuplicateAccount.WrapMessage("google id already linked to another user")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to link google id")
	}

	return doc.ToDomain(), nil
}

func (repo *userRepository) findOne(ctx context.Context, filter bson.M, msg string) (*entity.User, error) {
	var doc model.UserModel
	if err := repo.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, msg)
	}

	return doc.ToDomain(), nil
}
