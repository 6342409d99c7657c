package tag

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

func TestGetTags(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateTag(t, db, "Lunch", "lunch")
	breakfast := testutil.CreateTag(t, db, "Breakfast", "breakfast")

	service := NewTagService(NewTagRepository(db))

	tags, err := service.GetTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Breakfast", tags[0].Name)

	got, err := service.GetTagByID(context.Background(), breakfast.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.Tag{ID: breakfast.ID.String(), Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}, got)
}

func TestGetTagByIDNotFound(t *testing.T) {
	service := NewTagService(NewTagRepository(testutil.NewDB(t)))

	_, err := service.GetTagByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrTagNotFound)

	_, err = service.GetTagByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFirstOrCreateTagIsIdempotentBySlug(t *testing.T) {
	repo := NewTagRepository(testutil.NewDB(t))
	ctx := context.Background()

	created, err := repo.FirstOrCreateTag(ctx, &entities.Tag{ID: uuid.New(), Name: "Dinner", Color: "#8775D2", Slug: "dinner"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.FirstOrCreateTag(ctx, &entities.Tag{ID: uuid.New(), Name: "Dinner again", Color: "#000000", Slug: "dinner"})
	require.NoError(t, err)
	assert.False(t, created)

	tags, err := repo.GetTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Dinner", tags[0].Name)
}
