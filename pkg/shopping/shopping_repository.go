package shopping

import (
	"context"

	"foodgram/domain"
	"foodgram/entities"

	"gorm.io/gorm"
)

type (
	ShoppingRepository interface {
		Aggregate(ctx context.Context, userID string) ([]domain.ShoppingListItem, error)
		GetUserByID(ctx context.Context, userID string) (*entities.User, error)
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

// Aggregate sums the ingredients of every recipe in the user's cart, one row
// per (name, unit), in a single grouped query.
func (r *shoppingRepository) Aggregate(ctx context.Context, userID string) ([]domain.ShoppingListItem, error) {
	items := []domain.ShoppingListItem{}
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC, ingredients.measurement_unit ASC").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *shoppingRepository) GetUserByID(ctx context.Context, userID string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
