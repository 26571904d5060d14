package handler

import (
	"time"

	"cookbook/internal/domain/entity"
)

type userResponse struct {
	ID          string    `json:"id"`
	GoogleID    string    `json:"googleId,omitempty"`
	DisplayName string    `json:"displayName"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:          u.ID,
		GoogleID:    u.GoogleID,
		DisplayName: u.DisplayName,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
	}
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type categoryUpdateRequest struct {
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
}

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toCategoryResponse(c *entity.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type recipeRequest struct {
	Title        string   `json:"title" validate:"required,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,required"`
	Category     string   `json:"category" validate:"required"`
	PrepTime     int      `json:"prepTime" validate:"gte=0"`
	CookTime     int      `json:"cookTime" validate:"gte=0"`
	Servings     int      `json:"servings" validate:"gte=0"`
	ImageURL     string   `json:"imageUrl" validate:"omitempty,url"`
}

type recipeUpdateRequest struct {
	Title        string   `json:"title" validate:"max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	Ingredients  []string `json:"ingredients" validate:"omitempty,dive,required"`
	Instructions []string `json:"instructions" validate:"omitempty,dive,required"`
	Category     string   `json:"category"`
	PrepTime     int      `json:"prepTime" validate:"gte=0"`
	CookTime     int      `json:"cookTime" validate:"gte=0"`
	Servings     int      `json:"servings" validate:"gte=0"`
	ImageURL     string   `json:"imageUrl" validate:"omitempty,url"`
}

type recipeResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	Category     string    `json:"category"`
	CategoryName string    `json:"categoryName,omitempty"`
	Author       string    `json:"author"`
	AuthorName   string    `json:"authorName,omitempty"`
	PrepTime     int       `json:"prepTime,omitempty"`
	CookTime     int       `json:"cookTime,omitempty"`
	Servings     int       `json:"servings,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Reviews      []string  `json:"reviews"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toRecipeResponse(r *entity.Recipe) recipeResponse {
	reviews := r.ReviewIDs
	if reviews == nil {
		reviews = []string{}
	}

	return recipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Category:     r.CategoryID,
		Author:       r.AuthorID,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		ImageURL:     r.ImageURL,
		Reviews:      reviews,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toRecipeDetailResponse(d *entity.RecipeDetail) recipeResponse {
	resp := toRecipeResponse(d.Recipe)
	resp.AuthorName = d.AuthorName
	resp.CategoryName = d.CategoryName

	return resp
}

type createReviewRequest struct {
	Recipe  string `json:"recipe" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

type updateReviewRequest struct {
	Rating  int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

type reviewResponse struct {
	ID         string    `json:"id"`
	Recipe     string    `json:"recipe"`
	Author     string    `json:"author"`
	AuthorName string    `json:"authorName,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toReviewResponse(r *entity.Review) reviewResponse {
	return reviewResponse{
		ID:         r.ID,
		Recipe:     r.RecipeID,
		Author:     r.AuthorID,
		AuthorName: r.AuthorName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}

	return out
}

type contactRequest struct {
	FirstName     string `json:"firstName" validate:"required,max=100"`
	LastName      string `json:"lastName" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	FavoriteColor string `json:"favoriteColor" validate:"required,max=50"`
}

type contactUpdateRequest struct {
	FirstName     string `json:"firstName" validate:"max=100"`
	LastName      string `json:"lastName" validate:"max=100"`
	Email         string `json:"email" validate:"omitempty,email"`
	FavoriteColor string `json:"favoriteColor" validate:"max=50"`
}

type contactResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	FavoriteColor string `json:"favoriteColor"`
}

func toContactResponse(c *entity.Contact) contactResponse {
	return contactResponse{
		ID:            c.ID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		FavoriteColor: c.FavoriteColor,
	}
}

// releaseDateLayout is the calendar date format accepted for product release dates.
const releaseDateLayout = "2006-01-02"

type productRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Description   string   `json:"description" validate:"required"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Category      string   `json:"category" validate:"required"`
	StockQuantity *int     `json:"stockQuantity" validate:"required,gte=0"`
	Supplier      string   `json:"supplier"`
	SKU           string   `json:"sku" validate:"required"`
	Tags          []string `json:"tags" validate:"omitempty,dive,required"`
	ReleaseDate   string   `json:"releaseDate" validate:"omitempty,datetime=2006-01-02"`
}

type productUpdateRequest struct {
	Name          *string  `json:"name" validate:"omitempty,max=200"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	Category      *string  `json:"category"`
	StockQuantity *int     `json:"stockQuantity" validate:"omitempty,gte=0"`
	Supplier      *string  `json:"supplier"`
	SKU           *string  `json:"sku"`
	Tags          []string `json:"tags" validate:"omitempty,dive,required"`
	ReleaseDate   string   `json:"releaseDate" validate:"omitempty,datetime=2006-01-02"`
}

type productResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	StockQuantity int       `json:"stockQuantity"`
	Supplier      string    `json:"supplier,omitempty"`
	SKU           string    `json:"sku"`
	Tags          []string  `json:"tags"`
	ReleaseDate   string    `json:"releaseDate,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toProductResponse(p *entity.Product) productResponse {
	resp := productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Category:      p.Category,
		StockQuantity: p.StockQuantity,
		Supplier:      p.Supplier,
		SKU:           p.SKU,
		Tags:          p.Tags,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}

	if p.ReleaseDate != nil {
		resp.ReleaseDate = p.ReleaseDate.Format(releaseDateLayout)
	}

	return resp
}

// parseReleaseDate reads an already validated date; empty means unset.
func parseReleaseDate(value string) *time.Time {
	if value == "" {
		return nil
	}

	date, err := time.Parse(releaseDateLayout, value)
	if err != nil {
		return nil
	}

	return &date
}
