package ingredient

import (
	"context"
	"testing"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIngredientsByPrefix(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateIngredient(t, db, "sugar", "g")
	testutil.CreateIngredient(t, db, "Salt", "g")
	testutil.CreateIngredient(t, db, "salt", "pinch")
	testutil.CreateIngredient(t, db, "Flour", "g")
	testutil.CreateIngredient(t, db, "50% cream", "ml")

	service := NewIngredientService(NewIngredientRepository(db))
	names := func(prefix string) []string {
		res, err := service.GetIngredients(context.Background(), prefix)
		require.NoError(t, err)
		out := []string{}
		for _, i := range res {
			out = append(out, i.Name+"/"+i.MeasurementUnit)
		}
		return out
	}

	assert.Len(t, names(""), 5)
	assert.ElementsMatch(t, []string{"Salt/g", "salt/pinch"}, names("SA"))
	assert.Equal(t, []string{"sugar/g"}, names("su"))
	assert.Equal(t, []string{"50% cream/ml"}, names("50%"))
	assert.Empty(t, names("%"))
	assert.Empty(t, names("alt"))
}

func TestGetIngredientByID(t *testing.T) {
	db := testutil.NewDB(t)
	flour := testutil.CreateIngredient(t, db, "Flour", "g")
	service := NewIngredientService(NewIngredientRepository(db))

	got, err := service.GetIngredientByID(context.Background(), flour.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.Ingredient{ID: flour.ID.String(), Name: "Flour", MeasurementUnit: "g"}, got)

	_, err = service.GetIngredientByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)
}

func TestFirstOrCreateIngredient(t *testing.T) {
	repo := NewIngredientRepository(testutil.NewDB(t))
	ctx := context.Background()

	created, err := repo.FirstOrCreateIngredient(ctx, &entities.Ingredient{ID: uuid.New(), Name: "Milk", MeasurementUnit: "ml"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.FirstOrCreateIngredient(ctx, &entities.Ingredient{ID: uuid.New(), Name: "Milk", MeasurementUnit: "ml"})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = repo.FirstOrCreateIngredient(ctx, &entities.Ingredient{ID: uuid.New(), Name: "Milk", MeasurementUnit: "cup"})
	require.NoError(t, err)
	assert.True(t, created)
}
