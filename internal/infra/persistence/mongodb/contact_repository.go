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

type contactRepository struct {
	coll *mongo.Collection
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *mongo.Database) repository.ContactRepository {
	return &contactRepository{coll: db.Collection(contactsCollection)}
}

func (repo *contactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc model.ContactModel
	if err := repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, repository.ErrContactNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find contact")
	}

	return doc.ToDomain(), nil
}

// List returns contacts ordered by last and first name.
func (repo *contactRepository) List(ctx context.Context) ([]*entity.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}})

	cursor, err := repo.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list contacts")
	}

	var docs []model.ContactModel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode contacts")
	}

	contacts := make([]*entity.Contact, 0, len(docs))
	for i := range docs {
		contacts = append(contacts, docs[i].ToDomain())
	}

	return contacts, nil
}

func (repo *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	contactM := model.NewContactModel(contact)

	result, err := repo.coll.InsertOne(ctx, contactM)
	if err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrContactAlreadyExists.WrapMessage("create contact")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		contact.ID = oid.Hex()
	}
	contact.Email = contactM.Email

	return nil
}

func (repo *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	oid, err := model.ParseID(contact.ID)
	if err != nil {
		return err
	}

	contact.Email = entity.NormalizeEmail(contact.Email)

	result, err := repo.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"firstName":     contact.FirstName,
		"lastName":      contact.LastName,
		"email":         contact.Email,
		"favoriteColor": contact.FavoriteColor,
	}})
	if err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrContactAlreadyExists.WrapMessage("update contact")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update contact")
	}
	if result.MatchedCount == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

func (repo *contactRepository) Delete(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}

	result, err := repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete contact")
	}
	if result.DeletedCount == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}
