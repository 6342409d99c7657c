package testutil

import (
	"encoding/base64"
	"testing"

	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PNGPixel is a valid 1x1 PNG.
var PNGPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func PNGDataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(PNGPixel)
}

func CreateUser(t testing.TB, db *gorm.DB, username string) *entities.User {
	t.Helper()
	user := &entities.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@foodgram.test",
		FirstName: username,
		LastName:  "Tester",
		Password:  "not-a-real-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateTag(t testing.TB, db *gorm.DB, name, slug string) *entities.Tag {
	t.Helper()
	tag := &entities.Tag{ID: uuid.New(), Name: name, Color: "#E26C2D", Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return tag
}

func CreateIngredient(t testing.TB, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()
	ingredient := &entities.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	return ingredient
}

// IngredientAmount pairs an ingredient with its amount for CreateRecipe.
type IngredientAmount struct {
	Ingredient *entities.Ingredient
	Amount     int
}

// CreateRecipe writes a recipe and its associations directly, bypassing the
// composer, for tests of readers.
func CreateRecipe(t testing.TB, db *gorm.DB, author *entities.User, name string, tags []*entities.Tag, items ...IngredientAmount) *entities.Recipe {
	t.Helper()
	recipe := &entities.Recipe{
		ID:          uuid.New(),
		AuthorID:    author.ID,
		Name:        name,
		Text:        name + " text",
		CookingTime: 10,
		ImageURL:    fakeMediaURL + "recipes/images/" + name + ".png",
	}
	if err := db.Omit("Author", "RecipeTags", "RecipeIngredients").Create(recipe).Error; err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	for _, tag := range tags {
		link := &entities.RecipeTag{ID: uuid.New(), RecipeID: recipe.ID, TagID: tag.ID}
		if err := db.Create(link).Error; err != nil {
			t.Fatalf("create recipe tag: %v", err)
		}
	}
	for i, item := range items {
		link := &entities.RecipeIngredient{
			ID:           uuid.New(),
			RecipeID:     recipe.ID,
			IngredientID: item.Ingredient.ID,
			Amount:       item.Amount,
			Position:     i,
		}
		if err := db.Create(link).Error; err != nil {
			t.Fatalf("create recipe ingredient: %v", err)
		}
	}
	return recipe
}
