package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/models"
)

func TestFavoriteAddRemove(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)
	author := createTestUser(t, db, "chef")
	fan := createTestUser(t, db, "fan")
	flour := createTestIngredient(t, db, "flour", "g")
	recipe := createTestRecipe(t, db, author, "Bread", []IngredientAmount{
		{IngredientID: flour.ID, Amount: 500},
	})
	ctx := context.Background()

	require.NoError(t, svc.AddFavorite(ctx, fan.ID, recipe.ID))
	assert.ErrorIs(t, svc.AddFavorite(ctx, fan.ID, recipe.ID), ErrAlreadyExists)

	require.NoError(t, svc.RemoveFavorite(ctx, fan.ID, recipe.ID))
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, fan.ID, recipe.ID), ErrNotFound)
}

func TestCartAddRemove(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)
	author := createTestUser(t, db, "chef")
	fan := createTestUser(t, db, "fan")
	flour := createTestIngredient(t, db, "flour", "g")
	recipe := createTestRecipe(t, db, author, "Bread", []IngredientAmount{
		{IngredientID: flour.ID, Amount: 500},
	})
	ctx := context.Background()

	require.NoError(t, svc.AddToCart(ctx, fan.ID, recipe.ID))
	assert.ErrorIs(t, svc.AddToCart(ctx, fan.ID, recipe.ID), ErrAlreadyExists)

	require.NoError(t, svc.RemoveFromCart(ctx, fan.ID, recipe.ID))
	assert.ErrorIs(t, svc.RemoveFromCart(ctx, fan.ID, recipe.ID), ErrNotFound)
}

func TestAddUnknownRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)
	fan := createTestUser(t, db, "fan")
	ctx := context.Background()

	assert.ErrorIs(t, svc.AddFavorite(ctx, fan.ID, uuid.New()), ErrNotFound)
	assert.ErrorIs(t, svc.AddToCart(ctx, fan.ID, uuid.New()), ErrNotFound)
}

// The favorite and cart relations must not bleed into one another.
func TestFavoriteAndCartAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCollectionService(db)
	author := createTestUser(t, db, "chef")
	fan := createTestUser(t, db, "fan")
	flour := createTestIngredient(t, db, "flour", "g")
	recipe := createTestRecipe(t, db, author, "Bread", []IngredientAmount{
		{IngredientID: flour.ID, Amount: 500},
	})
	ctx := context.Background()

	require.NoError(t, svc.AddFavorite(ctx, fan.ID, recipe.ID))
	require.NoError(t, svc.AddToCart(ctx, fan.ID, recipe.ID))
	require.NoError(t, svc.RemoveFavorite(ctx, fan.ID, recipe.ID))

	var count int64
	require.NoError(t, db.Model(&models.ShoppingCartItem{}).
		Where("user_id = ? AND recipe_id = ?", fan.ID, recipe.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
