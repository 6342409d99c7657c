package migration

import (
	"foodgram/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Parents before children so foreign keys resolve.
var models = []struct {
	name  string
	model any
}{
	{"user", &entities.User{}},
	{"tag", &entities.Tag{}},
	{"ingredient", &entities.Ingredient{}},
	{"recipe", &entities.Recipe{}},
	{"recipe tag", &entities.RecipeTag{}},
	{"recipe ingredient", &entities.RecipeIngredient{}},
	{"favorite", &entities.Favorite{}},
	{"shopping cart", &entities.ShoppingCartEntry{}},
	{"subscription", &entities.Subscription{}},
}

func Migrate(db *gorm.DB) error {
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Errorf("Error migrating %s database: %v", m.name, err)
			return err
		}
	}

	log.Info("Database migration complete")
	return nil
}
