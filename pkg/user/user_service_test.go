package user

import (
	"context"
	"testing"
	"time"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testutil"
	"foodgram/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*gorm.DB, UserService, jwt.JWTService) {
	db := testutil.NewDB(t)
	jwtService := jwt.NewJWTServiceWithSecret("test-secret")
	return db, NewUserService(NewUserRepository(db), jwtService), jwtService
}

func registerRequest() domain.RegisterRequest {
	return domain.RegisterRequest{
		Email:     "Cook@Example.com",
		Username:  "cook",
		FirstName: "Julia",
		LastName:  "Child",
		Password:  "s3cret-pass",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	_, service, jwtService := newService(t)
	ctx := context.Background()

	user, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", user.Email)
	assert.False(t, user.IsSubscribed)

	res, err := service.Login(ctx, domain.LoginRequest{Email: "COOK@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	userID, err := jwtService.GetUserIDByToken(res.AuthToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	me, err := service.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, user, me)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	_, service, _ := newService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = service.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	req := registerRequest()
	req.Email = "other@example.com"
	_, err = service.Register(ctx, req)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Equal(t, map[string]string{"username": domain.ErrUsernameTaken.Message}, domain.FieldErrors(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, service, _ := newService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "cook@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestGetUserByIDReportsSubscription(t *testing.T) {
	db, service, _ := newService(t)
	ctx := context.Background()
	fan := testutil.CreateUser(t, db, "fan")
	chef := testutil.CreateUser(t, db, "chef")
	require.NoError(t, db.Create(&entities.Subscription{ID: uuid.New(), UserID: fan.ID, AuthorID: chef.ID}).Error)

	got, err := service.GetUserByID(ctx, chef.ID.String(), fan.ID.String())
	require.NoError(t, err)
	assert.True(t, got.IsSubscribed)

	got, err = service.GetUserByID(ctx, chef.ID.String(), "")
	require.NoError(t, err)
	assert.False(t, got.IsSubscribed)

	got, err = service.GetUserByID(ctx, fan.ID.String(), chef.ID.String())
	require.NoError(t, err)
	assert.False(t, got.IsSubscribed)

	_, err = service.GetUserByID(ctx, uuid.NewString(), "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetSubscriptions(t *testing.T) {
	db, service, _ := newService(t)
	ctx := context.Background()

	fan := testutil.CreateUser(t, db, "fan")
	baker := testutil.CreateUser(t, db, "baker")
	grill := testutil.CreateUser(t, db, "grill")
	quiet := testutil.CreateUser(t, db, "quiet")
	tag := testutil.CreateTag(t, db, "Dinner", "dinner")
	salt := testutil.CreateIngredient(t, db, "Salt", "g")
	amount := testutil.IngredientAmount{Ingredient: salt, Amount: 1}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"Bread", "Bagel", "Brioche"} {
		r := testutil.CreateRecipe(t, db, baker, name, []*entities.Tag{tag}, amount)
		require.NoError(t, db.Model(&entities.Recipe{}).Where("id = ?", r.ID).UpdateColumn("created_at", base.Add(time.Duration(i)*time.Hour)).Error)
	}
	testutil.CreateRecipe(t, db, grill, "Steak", []*entities.Tag{tag}, amount)

	for i, author := range []*entities.User{baker, grill, quiet} {
		sub := &entities.Subscription{ID: uuid.New(), UserID: fan.ID, AuthorID: author.ID, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, db.Create(sub).Error)
	}

	count := testutil.CountQueries(db)
	res, err := service.GetSubscriptions(ctx, fan.ID.String(), 1, 10, 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, *count, 4)

	require.Len(t, res.Authors, 3)
	assert.Equal(t, int64(3), res.Pagination.Total)

	// Newest subscription first.
	assert.Equal(t, "quiet", res.Authors[0].Username)
	assert.Empty(t, res.Authors[0].Recipes)
	assert.Zero(t, res.Authors[0].RecipesCount)

	assert.Equal(t, "grill", res.Authors[1].Username)
	assert.Equal(t, int64(1), res.Authors[1].RecipesCount)

	baked := res.Authors[2]
	assert.True(t, baked.IsSubscribed)
	assert.Equal(t, int64(3), baked.RecipesCount)
	require.Len(t, baked.Recipes, 2)
	assert.Equal(t, "Brioche", baked.Recipes[0].Name)
	assert.Equal(t, "Bagel", baked.Recipes[1].Name)
}

func TestGetSubscriptionAuthorWithoutLimit(t *testing.T) {
	db, service, _ := newService(t)
	fan := testutil.CreateUser(t, db, "fan")
	chef := testutil.CreateUser(t, db, "chef")
	tag := testutil.CreateTag(t, db, "Dinner", "dinner")
	salt := testutil.CreateIngredient(t, db, "Salt", "g")
	for _, name := range []string{"One", "Two", "Three"} {
		testutil.CreateRecipe(t, db, chef, name, []*entities.Tag{tag}, testutil.IngredientAmount{Ingredient: salt, Amount: 1})
	}

	got, err := service.GetSubscriptionAuthor(context.Background(), chef.ID.String(), fan.ID.String(), 0)
	require.NoError(t, err)
	assert.Len(t, got.Recipes, 3)
	assert.Equal(t, int64(3), got.RecipesCount)
	assert.False(t, got.IsSubscribed)
}
