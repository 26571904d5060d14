package entity

import "time"

// Recipe is a user-authored dish. Only its author may modify or remove it.
type Recipe struct {
	ID           string
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	CategoryID   string
	AuthorID     string
	PrepTime     int // minutes
	CookTime     int // minutes
	Servings     int
	ImageURL     string
	ReviewIDs    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r *Recipe) OwnerID() string {
	return r.AuthorID
}

// RecipeDetail is a recipe with its author and category resolved for display.
type RecipeDetail struct {
	*Recipe
	AuthorName   string
	CategoryName string
}
