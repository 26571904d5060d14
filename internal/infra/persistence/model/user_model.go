// Package model holds the document shapes persisted to MongoDB and their
// mapping to domain entities.
package model

import (
	"time"

	"cookbook/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserModel mirrors a document in the 'users' collection.
// googleId is omitted when empty so the sparse unique index ignores unlinked users.
type UserModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	GoogleID    string             `bson:"googleId,omitempty"`
	DisplayName string             `bson:"displayName"`
	FirstName   string             `bson:"firstName,omitempty"`
	LastName    string             `bson:"lastName,omitempty"`
	Email       string             `bson:"email"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// ToDomain maps the document to a domain user.
func (m *UserModel) ToDomain() *entity.User {
	return &entity.User{
		ID:          m.ID.Hex(),
		GoogleID:    m.GoogleID,
		DisplayName: m.DisplayName,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Email:       m.Email,
		CreatedAt:   m.CreatedAt,
	}
}

// NewUserModel maps a domain user for insertion. The id is left for the store to assign.
func NewUserModel(user *entity.User) *UserModel {
	createdAt, _ := creationTimes(user.CreatedAt, time.Time{})

	return &UserModel{
		GoogleID:    user.GoogleID,
		DisplayName: user.DisplayName,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       entity.NormalizeEmail(user.Email),
		CreatedAt:   createdAt,
	}
}
