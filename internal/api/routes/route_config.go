package routes

import (
	"foodgram/internal/api/handlers"
	"foodgram/internal/middleware"
	"foodgram/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	TagHandler          handlers.TagHandler
	IngredientHandler   handlers.IngredientHandler
	RecipeHandler       handlers.RecipeHandler
	FavoriteHandler     handlers.MembershipHandler
	ShoppingCartHandler handlers.MembershipHandler
	SubscriptionHandler handlers.MembershipHandler
	ShoppingHandler     handlers.ShoppingHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Reference()
	c.Recipes()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	c.App.Post("/api/auth/token/login", c.UserHandler.Login)

	user := c.App.Group("/api/users")
	{
		user.Post("", c.UserHandler.Register)
		user.Get("/me", auth, c.UserHandler.Me)
		user.Get("/subscriptions", auth, c.UserHandler.GetSubscriptions)
		user.Get("/:id", optional, c.UserHandler.GetUser)
		user.Post("/:id/subscribe", auth, c.SubscriptionHandler.Add)
		user.Delete("/:id/subscribe", auth, c.SubscriptionHandler.Remove)
	}
}

func (c *Config) Reference() {
	tags := c.App.Group("/api/tags")
	tags.Get("", c.TagHandler.GetTags)
	tags.Get("/:id", c.TagHandler.GetTag)

	ingredients := c.App.Group("/api/ingredients")
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/recipes")

	// Static paths before /:id.
	recipes.Get("/download_shopping_cart", auth, c.ShoppingHandler.DownloadShoppingCart)
	recipes.Post("/shopping_cart/send", auth, c.ShoppingHandler.SendShoppingCart)

	recipes.Get("", optional, c.RecipeHandler.GetRecipes)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)
	recipes.Get("/:id", optional, c.RecipeHandler.GetRecipe)
	recipes.Patch("/:id", auth, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)

	recipes.Post("/:id/favorite", auth, c.FavoriteHandler.Add)
	recipes.Delete("/:id/favorite", auth, c.FavoriteHandler.Remove)
	recipes.Post("/:id/shopping_cart", auth, c.ShoppingCartHandler.Add)
	recipes.Delete("/:id/shopping_cart", auth, c.ShoppingCartHandler.Remove)
}
