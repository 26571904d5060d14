package model

import (
	"cookbook/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactModel mirrors a document in the 'contacts' collection.
type ContactModel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     string             `bson:"firstName"`
	LastName      string             `bson:"lastName"`
	Email         string             `bson:"email"`
	FavoriteColor string             `bson:"favoriteColor"`
}

func (m *ContactModel) ToDomain() *entity.Contact {
	return &entity.Contact{
		ID:            m.ID.Hex(),
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		FavoriteColor: m.FavoriteColor,
	}
}

// NewContactModel maps a domain contact for insertion with its email lower-cased.
func NewContactModel(contact *entity.Contact) *ContactModel {
	return &ContactModel{
		FirstName:     contact.FirstName,
		LastName:      contact.LastName,
		Email:         entity.NormalizeEmail(contact.Email),
		FavoriteColor: contact.FavoriteColor,
	}
}
