package config

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testutil"
	"foodgram/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

type testApp struct {
	t       *testing.T
	app     *fiber.App
	db      *gorm.DB
	storage *testutil.Storage
	mailer  *testutil.Mailer
	jwt     jwt.JWTService
}

func newTestApp(t *testing.T) *testApp {
	db := testutil.NewDB(t)
	s3 := testutil.NewStorage()
	mailer := &testutil.Mailer{}
	jwtService := jwt.NewJWTServiceWithSecret("test-secret")

	return &testApp{
		t:       t,
		app:     NewAppWith(db, Dependencies{Storage: s3, Mailer: mailer, JWT: jwtService}),
		db:      db,
		storage: s3,
		mailer:  mailer,
		jwt:     jwtService,
	}
}

func (a *testApp) do(method, path, token string, body any) (*http.Response, []byte) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp, raw
}

func (a *testApp) json(method, path, token string, body any, wantStatus int, data any) envelope {
	a.t.Helper()

	resp, raw := a.do(method, path, token, body)
	require.Equal(a.t, wantStatus, resp.StatusCode, string(raw))
	if wantStatus == fiber.StatusNoContent {
		return envelope{}
	}

	var env envelope
	require.NoError(a.t, json.Unmarshal(raw, &env), string(raw))
	if data != nil {
		require.NoError(a.t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (a *testApp) register(username string) (domain.UserResponse, string) {
	a.t.Helper()

	var user domain.UserResponse
	a.json("POST", "/api/users", "", domain.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: username,
		LastName:  "Cook",
		Password:  "very-secret",
	}, fiber.StatusCreated, &user)

	var login domain.LoginResponse
	a.json("POST", "/api/auth/token/login", "", domain.LoginRequest{
		Email:    username + "@example.com",
		Password: "very-secret",
	}, fiber.StatusOK, &login)
	require.NotEmpty(a.t, login.AuthToken)

	return user, login.AuthToken
}

type catalog struct {
	breakfast *entities.Tag
	flour     *entities.Ingredient
	salt      *entities.Ingredient
}

func (a *testApp) catalog() catalog {
	return catalog{
		breakfast: testutil.CreateTag(a.t, a.db, "Breakfast", "breakfast"),
		flour:     testutil.CreateIngredient(a.t, a.db, "Flour", "g"),
		salt:      testutil.CreateIngredient(a.t, a.db, "Salt", "g"),
	}
}

func (c catalog) recipe(name string, flour int) domain.RecipeRequest {
	return domain.RecipeRequest{
		Name:        name,
		Text:        "Bake it.",
		CookingTime: 30,
		Image:       testutil.PNGDataURI(),
		Tags:        []string{c.breakfast.ID.String()},
		Ingredients: []domain.RecipeIngredientRequest{
			{ID: c.flour.ID.String(), Amount: flour},
			{ID: c.salt.ID.String(), Amount: 5},
		},
	}
}

func TestUserEndpoints(t *testing.T) {
	a := newTestApp(t)
	user, token := a.register("julia")

	var me domain.UserResponse
	a.json("GET", "/api/users/me", token, nil, fiber.StatusOK, &me)
	assert.Equal(t, user, me)

	a.json("GET", "/api/users/me", "", nil, fiber.StatusUnauthorized, nil)

	env := a.json("POST", "/api/users", "", domain.RegisterRequest{Email: "bad", Username: "bad name"}, fiber.StatusBadRequest, nil)
	assert.Contains(t, env.Errors, "email")
	assert.Contains(t, env.Errors, "username")
	assert.Contains(t, env.Errors, "password")

	env = a.json("POST", "/api/auth/token/login", "", domain.LoginRequest{Email: "julia@example.com", Password: "nope"}, fiber.StatusBadRequest, nil)
	assert.Contains(t, env.Errors, "password")

	a.json("GET", "/api/users/not-a-uuid", "", nil, fiber.StatusNotFound, nil)
}

func TestRecipeLifecycle(t *testing.T) {
	a := newTestApp(t)
	c := a.catalog()
	_, authorToken := a.register("author")
	_, otherToken := a.register("other")

	a.json("POST", "/api/recipes", "", c.recipe("Bread", 500), fiber.StatusUnauthorized, nil)

	var created domain.Recipe
	a.json("POST", "/api/recipes", authorToken, c.recipe("Bread", 500), fiber.StatusCreated, &created)
	assert.Equal(t, "Bread", created.Name)
	assert.Len(t, created.Ingredients, 2)
	assert.Len(t, created.Tags, 1)

	var list domain.RecipeListResponse
	a.json("GET", "/api/recipes?tags=breakfast&tags=lunch", "", nil, fiber.StatusOK, &list)
	require.Len(t, list.Recipes, 1)
	assert.Equal(t, created.ID, list.Recipes[0].ID)

	a.json("GET", "/api/recipes?tags=lunch", "", nil, fiber.StatusOK, &list)
	assert.Empty(t, list.Recipes)

	update := c.recipe("Rye bread", 300)
	update.Image = ""
	a.json("PATCH", "/api/recipes/"+created.ID, otherToken, update, fiber.StatusForbidden, nil)

	malformed := c.recipe("Rye bread", 300)
	malformed.Tags = []string{"not-a-uuid"}
	malformed.Ingredients[0].ID = "not-a-uuid"
	a.json("PATCH", "/api/recipes/"+created.ID, otherToken, malformed, fiber.StatusForbidden, nil)
	env := a.json("PATCH", "/api/recipes/"+created.ID, authorToken, malformed, fiber.StatusBadRequest, nil)
	assert.Contains(t, env.Errors, "tags")

	var updated domain.Recipe
	a.json("PATCH", "/api/recipes/"+created.ID, authorToken, update, fiber.StatusOK, &updated)
	assert.Equal(t, "Rye bread", updated.Name)
	assert.Equal(t, created.Image, updated.Image)

	bad := c.recipe("Empty", 100)
	bad.Tags = nil
	env = a.json("POST", "/api/recipes", authorToken, bad, fiber.StatusBadRequest, nil)
	assert.Contains(t, env.Errors, "tags")

	bad = c.recipe("Zero", 0)
	env = a.json("POST", "/api/recipes", authorToken, bad, fiber.StatusBadRequest, nil)
	assert.Equal(t, domain.ErrInvalidAmount.Message, env.Errors["ingredients"])

	a.json("DELETE", "/api/recipes/"+created.ID, otherToken, nil, fiber.StatusForbidden, nil)
	a.json("DELETE", "/api/recipes/"+created.ID, authorToken, nil, fiber.StatusNoContent, nil)
	a.json("GET", "/api/recipes/"+created.ID, "", nil, fiber.StatusNotFound, nil)
	assert.Empty(t, a.storage.Objects)
}

func TestRecipeCollections(t *testing.T) {
	a := newTestApp(t)
	c := a.catalog()
	_, authorToken := a.register("author")
	_, fanToken := a.register("fan")

	var recipe domain.Recipe
	a.json("POST", "/api/recipes", authorToken, c.recipe("Bread", 500), fiber.StatusCreated, &recipe)

	for _, collection := range []string{"favorite", "shopping_cart"} {
		path := "/api/recipes/" + recipe.ID + "/" + collection

		var summary domain.RecipeSummary
		a.json("POST", path, fanToken, nil, fiber.StatusCreated, &summary)
		assert.Equal(t, recipe.Summary(), summary)

		env := a.json("POST", path, fanToken, nil, fiber.StatusBadRequest, nil)
		assert.Contains(t, env.Errors, "errors")
	}

	var got domain.Recipe
	a.json("GET", "/api/recipes/"+recipe.ID, fanToken, nil, fiber.StatusOK, &got)
	assert.True(t, got.IsFavorited)
	assert.True(t, got.IsInShoppingCart)

	a.json("GET", "/api/recipes/"+recipe.ID, "", nil, fiber.StatusOK, &got)
	assert.False(t, got.IsFavorited)

	var list domain.RecipeListResponse
	a.json("GET", "/api/recipes?is_favorited=1", fanToken, nil, fiber.StatusOK, &list)
	assert.Len(t, list.Recipes, 1)
	a.json("GET", "/api/recipes?is_favorited=1", authorToken, nil, fiber.StatusOK, &list)
	assert.Empty(t, list.Recipes)
	a.json("GET", "/api/recipes?is_in_shopping_cart=1", "", nil, fiber.StatusOK, &list)
	assert.Empty(t, list.Recipes)

	resp, body := a.do("GET", "/api/recipes/download_shopping_cart?format=txt", fanToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="shopping_list.txt"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "Shopping list:\n\nFlour (g) - 500\nSalt (g) - 5\n", string(body))

	resp, body = a.do("GET", "/api/recipes/download_shopping_cart", fanToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))

	a.json("GET", "/api/recipes/download_shopping_cart?format=doc", fanToken, nil, fiber.StatusBadRequest, nil)

	a.json("POST", "/api/recipes/shopping_cart/send", fanToken, nil, fiber.StatusOK, nil)
	require.Len(t, a.mailer.Sent, 1)
	assert.Equal(t, "fan@example.com", a.mailer.Sent[0].To)

	a.json("DELETE", "/api/recipes/"+recipe.ID+"/favorite", fanToken, nil, fiber.StatusNoContent, nil)
	env := a.json("DELETE", "/api/recipes/"+recipe.ID+"/favorite", fanToken, nil, fiber.StatusBadRequest, nil)
	assert.Equal(t, domain.ErrNotFavorited.Message, env.Error)

	a.json("POST", "/api/recipes/not-a-uuid/favorite", fanToken, nil, fiber.StatusNotFound, nil)
}

func TestSubscriptions(t *testing.T) {
	a := newTestApp(t)
	c := a.catalog()
	author, authorToken := a.register("author")
	fan, fanToken := a.register("fan")

	for _, name := range []string{"One", "Two", "Three"} {
		a.json("POST", "/api/recipes", authorToken, c.recipe(name, 100), fiber.StatusCreated, nil)
	}

	env := a.json("POST", "/api/users/"+fan.ID+"/subscribe", fanToken, nil, fiber.StatusBadRequest, nil)
	assert.Equal(t, domain.ErrSelfSubscription.Message, env.Error)

	var sub domain.SubscriptionAuthor
	a.json("POST", "/api/users/"+author.ID+"/subscribe?recipes_limit=2", fanToken, nil, fiber.StatusCreated, &sub)
	assert.Equal(t, author.ID, sub.ID)
	assert.True(t, sub.IsSubscribed)
	assert.Len(t, sub.Recipes, 2)
	assert.Equal(t, int64(3), sub.RecipesCount)

	a.json("POST", "/api/users/"+author.ID+"/subscribe", fanToken, nil, fiber.StatusBadRequest, nil)

	var profile domain.UserResponse
	a.json("GET", "/api/users/"+author.ID, fanToken, nil, fiber.StatusOK, &profile)
	assert.True(t, profile.IsSubscribed)

	var subs domain.SubscriptionListResponse
	a.json("GET", "/api/users/subscriptions?recipes_limit=1", fanToken, nil, fiber.StatusOK, &subs)
	require.Len(t, subs.Authors, 1)
	assert.Len(t, subs.Authors[0].Recipes, 1)

	a.json("DELETE", "/api/users/"+author.ID+"/subscribe", fanToken, nil, fiber.StatusNoContent, nil)
	a.json("DELETE", "/api/users/"+author.ID+"/subscribe", fanToken, nil, fiber.StatusBadRequest, nil)
}

func TestReferenceEndpoints(t *testing.T) {
	a := newTestApp(t)
	c := a.catalog()

	var tags []domain.Tag
	a.json("GET", "/api/tags", "", nil, fiber.StatusOK, &tags)
	require.Len(t, tags, 1)
	assert.Equal(t, "breakfast", tags[0].Slug)

	a.json("GET", "/api/tags/"+c.breakfast.ID.String(), "", nil, fiber.StatusOK, nil)

	var ingredients []domain.Ingredient
	a.json("GET", "/api/ingredients?name=fl", "", nil, fiber.StatusOK, &ingredients)
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Flour", ingredients[0].Name)

	a.json("GET", "/api/ingredients/"+c.salt.ID.String(), "", nil, fiber.StatusOK, nil)
}
