package recipe

import (
	"context"

	"foodgram/domain"
	"foodgram/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		GetRecipeByID(ctx context.Context, id string, viewerID string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]*entities.Recipe, int64, error)
		GetRecipeOwner(ctx context.Context, id string) (*entities.Recipe, error)
		GetExistingTagIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
		GetExistingIngredientIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.RecipeTag, ingredients []*entities.RecipeIngredient) error
		ReplaceRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.RecipeTag, ingredients []*entities.RecipeIngredient) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// withViewerFlags selects the viewer's favorite, cart and subscription state
// as correlated EXISTS columns so a page of recipes is annotated in the same
// query that loads it.
func withViewerFlags(viewerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewerID == "" {
			return db.Select("recipes.*, FALSE AS is_favorited, FALSE AS is_in_shopping_cart, FALSE AS is_author_subscribed")
		}
		return db.Select(`recipes.*,
			EXISTS (SELECT 1 FROM favorites f WHERE f.recipe_id = recipes.id AND f.user_id = ?) AS is_favorited,
			EXISTS (SELECT 1 FROM shopping_cart_entries sc WHERE sc.recipe_id = recipes.id AND sc.user_id = ?) AS is_in_shopping_cart,
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.author_id = recipes.author_id AND s.user_id = ?) AS is_author_subscribed`,
			viewerID, viewerID, viewerID)
	}
}

// withDetails loads author, tags and ordered ingredients with one query each.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("RecipeTags.Tag").
		Preload("RecipeIngredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.position ASC")
		}).
		Preload("RecipeIngredients.Ingredient")
}

func withFilter(filter domain.RecipeFilter, viewerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.AuthorID != "" {
			db = db.Where("recipes.author_id = ?", filter.AuthorID)
		}
		if len(filter.TagSlugs) > 0 {
			db = db.Where(`EXISTS (SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
				WHERE rt.recipe_id = recipes.id AND t.slug IN ?)`, filter.TagSlugs)
		}
		if filter.IsFavorited {
			db = db.Where("EXISTS (SELECT 1 FROM favorites f WHERE f.recipe_id = recipes.id AND f.user_id = ?)", viewerID)
		}
		if filter.IsInShoppingCart {
			db = db.Where("EXISTS (SELECT 1 FROM shopping_cart_entries sc WHERE sc.recipe_id = recipes.id AND sc.user_id = ?)", viewerID)
		}
		return db
	}
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string, viewerID string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Scopes(withViewerFlags(viewerID), withDetails).
		Where("recipes.id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter, viewerID string) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (filter.Page - 1) * filter.Limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Scopes(withFilter(filter, viewerID)).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if count == 0 {
		return recipes, 0, nil
	}

	if err := r.db.WithContext(ctx).
		Scopes(withViewerFlags(viewerID), withFilter(filter, viewerID), withDetails).
		Order("recipes.created_at DESC").
		Order("recipes.id DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetRecipeOwner(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Select("id", "author_id", "image_url").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetExistingTagIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var found []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *recipeRepository) GetExistingIngredientIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	var found []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.Ingredient{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.RecipeTag, ingredients []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return insertAssociations(tx, tags, ingredients)
	})
}

// ReplaceRecipe overwrites the scalar fields of an existing recipe and swaps
// its whole tag and ingredient sets.
func (r *recipeRepository) ReplaceRecipe(ctx context.Context, recipe *entities.Recipe, tags []*entities.RecipeTag, ingredients []*entities.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked entities.Recipe
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", recipe.ID).
			First(&locked).Error; err != nil {
			return err
		}

		if err := tx.Model(&entities.Recipe{ID: recipe.ID}).
			Select("name", "text", "cooking_time", "image_url", "updated_at").
			Updates(recipe).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeIngredient{}).Error; err != nil {
			return err
		}

		return insertAssociations(tx, tags, ingredients)
	})
}

func insertAssociations(tx *gorm.DB, tags []*entities.RecipeTag, ingredients []*entities.RecipeIngredient) error {
	if err := tx.Omit(clause.Associations).Create(&tags).Error; err != nil {
		return err
	}
	return tx.Omit(clause.Associations).Create(&ingredients).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}
