package model

import (
	"time"

	"cookbook/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewModel mirrors a document in the 'reviews' collection.
type ReviewModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Rating    int                `bson:"rating"`
	Comment   string             `bson:"comment,omitempty"`
	Author    primitive.ObjectID `bson:"author"`
	Recipe    primitive.ObjectID `bson:"recipe"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (m *ReviewModel) ToDomain() *entity.Review {
	return &entity.Review{
		ID:        m.ID.Hex(),
		RecipeID:  m.Recipe.Hex(),
		AuthorID:  m.Author.Hex(),
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewReviewModel(review *entity.Review) (*ReviewModel, error) {
	recipeID, err := ParseID(review.RecipeID)
	if err != nil {
		return nil, err
	}

	authorID, err := ParseID(review.AuthorID)
	if err != nil {
		return nil, err
	}

	createdAt, updatedAt := creationTimes(review.CreatedAt, review.UpdatedAt)

	return &ReviewModel{
		Rating:    review.Rating,
		Comment:   review.Comment,
		Author:    authorID,
		Recipe:    recipeID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}
