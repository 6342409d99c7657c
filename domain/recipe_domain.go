package domain

import (
	"time"
)

const (
	RecipeNameMaxLength = 200
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound           = NewNotFoundError("recipe not found")
	ErrUnauthorizedRecipeAccess = NewPermissionError("only the author can modify this recipe")

	ErrEmptyTagSet          = NewValidationError("tags", "recipe must have at least one tag")
	ErrDuplicateTags        = NewValidationError("tags", "remove duplicate tags")
	ErrUnknownTag           = NewValidationError("tags", "unknown tag")
	ErrEmptyIngredientSet   = NewValidationError("ingredients", "recipe must have at least one ingredient")
	ErrDuplicateIngredients = NewValidationError("ingredients", "remove duplicate ingredients")
	ErrUnknownIngredient    = NewValidationError("ingredients", "unknown ingredient")
	ErrInvalidAmount        = NewValidationError("ingredients", "ingredient amount must be greater than zero")

	ErrInvalidField       = NewValidationError("", "invalid field")
	ErrInvalidName        = &Error{Kind: ErrInvalidField, Field: "name", Message: "name must be between 1 and 200 characters"}
	ErrInvalidText        = &Error{Kind: ErrInvalidField, Field: "text", Message: "text must not be empty"}
	ErrInvalidCookingTime = &Error{Kind: ErrInvalidField, Field: "cooking_time", Message: "cooking time must be at least 1 minute"}
	ErrImageRequired      = &Error{Kind: ErrInvalidField, Field: "image", Message: "image is required"}
	ErrInvalidImage       = &Error{Kind: ErrInvalidField, Field: "image", Message: "image must be a base64 data URI"}

	ErrSaveRecipeFailed = &Error{Kind: ErrTransient, Message: "recipe could not be saved, please retry"}
)

type (
	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount"`
	}

	// RecipeRequest is the write payload for both create and update.
	RecipeRequest struct {
		Name        string                    `json:"name"`
		Text        string                    `json:"text"`
		CookingTime int                       `json:"cooking_time"`
		Image       string                    `json:"image"`
		Tags        []string                  `json:"tags" validate:"dive,uuid"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
	}

	RecipeFilter struct {
		Page             int
		Limit            int
		AuthorID         string
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
	}

	RecipeTag struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}

	RecipeIngredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	Recipe struct {
		ID               string             `json:"id"`
		Tags             []RecipeTag        `json:"tags"`
		Author           *UserResponse      `json:"author"`
		Ingredients      []RecipeIngredient `json:"ingredients"`
		IsFavorited      bool               `json:"is_favorited"`
		IsInShoppingCart bool               `json:"is_in_shopping_cart"`
		Name             string             `json:"name"`
		Image            string             `json:"image"`
		Text             string             `json:"text"`
		CookingTime      int                `json:"cooking_time"`
		CreatedAt        time.Time          `json:"created_at"`
	}

	// RecipeSummary is the short form returned by collection endpoints.
	RecipeSummary struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeListResponse struct {
		Recipes    []Recipe   `json:"recipes"`
		Pagination Pagination `json:"pagination"`
	}
)

func (r Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}
