package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	reader := createTestUser(t, db, "reader")
	author := createTestUser(t, db, "author")
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, reader.ID, author.ID))
	assert.ErrorIs(t, svc.Subscribe(ctx, reader.ID, author.ID), ErrAlreadyExists)
	assert.ErrorIs(t, svc.Subscribe(ctx, reader.ID, reader.ID), ErrSelfSubscribe)
	assert.ErrorIs(t, svc.Subscribe(ctx, reader.ID, uuid.New()), ErrNotFound)
}

func TestUnsubscribe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	reader := createTestUser(t, db, "reader")
	author := createTestUser(t, db, "author")
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, reader.ID, author.ID))
	require.NoError(t, svc.Unsubscribe(ctx, reader.ID, author.ID))
	assert.ErrorIs(t, svc.Unsubscribe(ctx, reader.ID, author.ID), ErrNotFound)
}

func TestSubscriptions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	reader := createTestUser(t, db, "reader")
	zoe := createTestUser(t, db, "zoe")
	adam := createTestUser(t, db, "adam")
	createTestUser(t, db, "bystander")
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, reader.ID, zoe.ID))
	require.NoError(t, svc.Subscribe(ctx, reader.ID, adam.ID))

	authors, total, err := svc.Subscriptions(ctx, reader.ID, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, authors, 2)
	assert.Equal(t, "adam", authors[0].Username)
	assert.Equal(t, "zoe", authors[1].Username)

	authors, total, err = svc.Subscriptions(ctx, reader.ID, 1, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, authors, 1)
}

func TestIsSubscribed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	reader := createTestUser(t, db, "reader")
	zoe := createTestUser(t, db, "zoe")
	adam := createTestUser(t, db, "adam")
	ctx := context.Background()

	require.NoError(t, svc.Subscribe(ctx, reader.ID, zoe.ID))

	subscribed, err := svc.IsSubscribed(ctx, reader.ID, []uuid.UUID{zoe.ID, adam.ID})
	require.NoError(t, err)
	assert.True(t, subscribed[zoe.ID])
	assert.False(t, subscribed[adam.ID])

	subscribed, err = svc.IsSubscribed(ctx, uuid.Nil, []uuid.UUID{zoe.ID})
	require.NoError(t, err)
	assert.Empty(t, subscribed)
}

func TestSetAvatar(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	user := createTestUser(t, db, "selfie")
	ctx := context.Background()

	require.NoError(t, svc.SetAvatar(ctx, user.ID, "https://cdn.example.com/a.png"))
	got, err := svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", got.AvatarURL)

	require.NoError(t, svc.SetAvatar(ctx, user.ID, ""))
	got, err = svc.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, got.AvatarURL)

	assert.ErrorIs(t, svc.SetAvatar(ctx, uuid.New(), "x"), ErrNotFound)
}

func TestRecipesByAuthors(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	chef := createTestUser(t, db, "chef")
	flour := createTestIngredient(t, db, "flour", "g")

	for _, name := range []string{"Bread", "Cake", "Soup"} {
		createTestRecipe(t, db, chef, name, []IngredientAmount{
			{IngredientID: flour.ID, Amount: 100},
		})
	}

	recipes, counts, err := svc.RecipesByAuthors(context.Background(), []uuid.UUID{chef.ID}, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts[chef.ID])
	assert.Len(t, recipes[chef.ID], 2)

	recipes, counts, err = svc.RecipesByAuthors(context.Background(), nil, 2)
	require.NoError(t, err)
	assert.Empty(t, recipes)
	assert.Empty(t, counts)
}
