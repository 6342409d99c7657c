package membership

import (
	"context"
	"strings"
	"sync"
	"testing"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	service MembershipService
	alice   *entities.User
	bob     *entities.User
	recipe  *entities.Recipe
}

func newFixture(t *testing.T) fixture {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	tag := testutil.CreateTag(t, db, "Breakfast", "breakfast")
	flour := testutil.CreateIngredient(t, db, "Flour", "g")
	recipe := testutil.CreateRecipe(t, db, bob, "Pancakes", []*entities.Tag{tag}, testutil.IngredientAmount{Ingredient: flour, Amount: 200})

	return fixture{
		db:      db,
		service: NewMembershipService(NewMembershipRepository(db)),
		alice:   alice,
		bob:     bob,
		recipe:  recipe,
	}
}

func TestAddAndRemoveRecipeMemberships(t *testing.T) {
	for _, kind := range []Kind{Favorite, ShoppingCart} {
		t.Run(kind.Name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			userID, recipeID := f.alice.ID.String(), f.recipe.ID.String()

			m, err := f.service.Add(ctx, kind, userID, recipeID)
			require.NoError(t, err)
			assert.Equal(t, kind.Name, m.Kind)
			assert.Equal(t, recipeID, m.TargetID)

			exists, err := f.service.Exists(ctx, kind, userID, recipeID)
			require.NoError(t, err)
			assert.True(t, exists)

			_, err = f.service.Add(ctx, kind, userID, recipeID)
			assert.ErrorIs(t, err, kind.ErrAlready)
			assert.ErrorIs(t, err, domain.ErrAlreadyMember)
			assert.ErrorIs(t, err, domain.ErrConflict)

			require.NoError(t, f.service.Remove(ctx, kind, userID, recipeID))

			err = f.service.Remove(ctx, kind, userID, recipeID)
			assert.ErrorIs(t, err, kind.ErrNotMember)
			assert.ErrorIs(t, err, domain.ErrNotAMember)

			exists, err = f.service.Exists(ctx, kind, userID, recipeID)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestFavoriteAndCartAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID, recipeID := f.alice.ID.String(), f.recipe.ID.String()

	_, err := f.service.Add(ctx, Favorite, userID, recipeID)
	require.NoError(t, err)

	inCart, err := f.service.Exists(ctx, ShoppingCart, userID, recipeID)
	require.NoError(t, err)
	assert.False(t, inCart)

	err = f.service.Remove(ctx, ShoppingCart, userID, recipeID)
	assert.ErrorIs(t, err, domain.ErrNotInCart)
}

func TestAddUnknownTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Add(ctx, Favorite, f.alice.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	_, err = f.service.Add(ctx, Subscription, f.alice.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	err = f.service.Remove(ctx, ShoppingCart, f.alice.ID.String(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubscriptionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	aliceID, bobID := f.alice.ID.String(), f.bob.ID.String()

	_, err := f.service.Add(ctx, Subscription, aliceID, bobID)
	require.NoError(t, err)

	_, err = f.service.Add(ctx, Subscription, aliceID, bobID)
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)

	subscribed, err := f.service.Exists(ctx, Subscription, aliceID, bobID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	reverse, err := f.service.Exists(ctx, Subscription, bobID, aliceID)
	require.NoError(t, err)
	assert.False(t, reverse)

	require.NoError(t, f.service.Remove(ctx, Subscription, aliceID, bobID))
	assert.ErrorIs(t, f.service.Remove(ctx, Subscription, aliceID, bobID), domain.ErrNotSubscribed)
}

func TestSelfSubscriptionIsRejectedFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	aliceID := f.alice.ID.String()

	forms := map[string]string{
		"canonical": aliceID,
		"uppercase": strings.ToUpper(aliceID),
		"braced":    "{" + aliceID + "}",
		"urn":       "urn:uuid:" + aliceID,
	}
	for name, target := range forms {
		t.Run(name, func(t *testing.T) {
			_, err := f.service.Add(ctx, Subscription, aliceID, target)
			assert.ErrorIs(t, err, domain.ErrSelfSubscription)
		})
	}

	var rows int64
	require.NoError(t, f.db.Model(&entities.Subscription{}).Where("user_id = author_id").Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestSelfSubscriptionRejectedByStorage(t *testing.T) {
	f := newFixture(t)

	err := f.db.Create(&entities.Subscription{ID: uuid.New(), UserID: f.alice.ID, AuthorID: f.alice.ID}).Error
	assert.Error(t, err)
}

func TestAddForDeletedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	aliceID := f.alice.ID.String()
	require.NoError(t, f.db.Delete(f.alice).Error)

	_, err := f.service.Add(ctx, Favorite, aliceID, f.recipe.ID.String())
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)

	_, err = f.service.Add(ctx, Subscription, aliceID, f.bob.ID.String())
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)
}

func TestExistsForAnonymousViewer(t *testing.T) {
	f := newFixture(t)

	exists, err := f.service.Exists(context.Background(), Favorite, "", f.recipe.ID.String())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestConcurrentAddCreatesOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID, recipeID := f.alice.ID.String(), f.recipe.ID.String()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Add(ctx, Favorite, userID, recipeID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyFavorited)
	}
	assert.Equal(t, 1, succeeded)

	var count int64
	require.NoError(t, f.db.Model(&entities.Favorite{}).Where("user_id = ? AND recipe_id = ?", f.alice.ID, f.recipe.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMembershipsCascadeWithRecipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Add(ctx, ShoppingCart, f.alice.ID.String(), f.recipe.ID.String())
	require.NoError(t, err)

	require.NoError(t, f.db.Delete(&entities.Recipe{}, "id = ?", f.recipe.ID).Error)

	var count int64
	require.NoError(t, f.db.Model(&entities.ShoppingCartEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}
