package handler

import (
	"net/http"

	"cookbook/internal/delivery/api/response"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ReviewHandler serves /api/reviews.
type ReviewHandler struct {
	reviews usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler.
func NewReviewHandler(reviews usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) ListByRecipe(c echo.Context) error {
	reviews, err := h.reviews.ListByRecipe(c.Request().Context(), c.Param("recipeId"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(reviews, toReviewResponse))
}

func (h *ReviewHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	review, err := h.reviews.Create(c.Request().Context(), user, usecase.CreateReviewInput{
		RecipeID: req.Recipe,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toReviewResponse(review))
}

func (h *ReviewHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateReviewRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	review, err := h.reviews.Update(c.Request().Context(), user, c.Param("id"), usecase.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toReviewResponse(review))
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.reviews.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Review removed")
}
