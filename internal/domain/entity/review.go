package entity

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating left by a user on an existing recipe.
type Review struct {
	ID         string
	RecipeID   string
	AuthorID   string
	AuthorName string // Resolved on read; not persisted.
	Rating     int
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r *Review) OwnerID() string {
	return r.AuthorID
}
