package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"foodgram/internal/api/handlers"
	"foodgram/internal/api/routes"
	"foodgram/internal/middleware"
	"foodgram/internal/utils"
	"foodgram/internal/utils/mailing"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/jwt"
	"foodgram/pkg/membership"
	"foodgram/pkg/recipe"
	"foodgram/pkg/shopping"
	"foodgram/pkg/tag"
	"foodgram/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const bodyLimit = 10 * 1024 * 1024

// Dependencies are the outside collaborators of the app.
type Dependencies struct {
	Storage   storage.AwsS3
	Mailer    mailing.Mailer
	JWT       jwt.JWTService
	LogOutput io.Writer
	// RateLimit is requests per second per client; zero disables limiting.
	RateLimit int
}

func NewApp(db *gorm.DB) (*fiber.App, error) {
	// setting up logging
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return NewAppWith(db, Dependencies{
		Storage:   storage.NewAwsS3(),
		Mailer:    mailing.NewMailer(),
		JWT:       jwt.NewJWTService(),
		LogOutput: file,
		RateLimit: 10,
	}), nil
}

func NewAppWith(db *gorm.DB, deps Dependencies) *fiber.App {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	if deps.LogOutput != nil {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			TimeZone:   "UTC",
			Output:     deps.LogOutput,
		}))
	}

	if deps.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        deps.RateLimit,
			Expiration: 1 * time.Second,
		}))
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	tagRepository := tag.NewTagRepository(db)
	ingredientRepository := ingredient.NewIngredientRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	membershipRepository := membership.NewMembershipRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)

	// Service
	userService := user.NewUserService(userRepository, deps.JWT)
	tagService := tag.NewTagService(tagRepository)
	ingredientService := ingredient.NewIngredientService(ingredientRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, deps.Storage)
	membershipService := membership.NewMembershipService(membershipRepository)
	shoppingService := shopping.NewShoppingService(shoppingRepository, deps.Mailer)

	// Handler
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         handlers.NewUserHandler(userService, validator),
		TagHandler:          handlers.NewTagHandler(tagService),
		IngredientHandler:   handlers.NewIngredientHandler(ingredientService),
		RecipeHandler:       handlers.NewRecipeHandler(recipeService, validator),
		FavoriteHandler:     handlers.NewFavoriteHandler(membershipService, recipeService),
		ShoppingCartHandler: handlers.NewShoppingCartHandler(membershipService, recipeService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(membershipService, userService),
		ShoppingHandler:     handlers.NewShoppingHandler(shoppingService),
		Middleware:          middlewares,
		JWTService:          deps.JWT,
	}
	routesConfig.Setup()
	return app
}
