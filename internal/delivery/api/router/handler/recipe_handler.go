package handler

import (
	"net/http"

	"cookbook/internal/delivery/api/response"
	"cookbook/internal/usecase"

	"github.com/labstack/echo/v4"
)

// RecipeHandler serves /api/recipes.
type RecipeHandler struct {
	recipes usecase.RecipeUsecase
}

// NewRecipeHandler is the constructor for RecipeHandler.
func NewRecipeHandler(recipes usecase.RecipeUsecase) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) List(c echo.Context) error {
	recipes, err := h.recipes.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, mapSlice(recipes, toRecipeDetailResponse))
}

func (h *RecipeHandler) Get(c echo.Context) error {
	recipe, err := h.recipes.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toRecipeDetailResponse(recipe))
}

func (h *RecipeHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req recipeRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	recipe, err := h.recipes.Create(c.Request().Context(), user, usecase.RecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CategoryID:   req.Category,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toRecipeResponse(recipe))
}

// Update applies the non-empty fields of the body. Only the author may update.
func (h *RecipeHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req recipeUpdateRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	recipe, err := h.recipes.Update(c.Request().Context(), user, c.Param("id"), usecase.RecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CategoryID:   req.Category,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toRecipeResponse(recipe))
}

func (h *RecipeHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.recipes.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Recipe removed")
}
