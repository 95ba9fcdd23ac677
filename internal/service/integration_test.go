package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/testhelpers"
)

// Runs the cart-to-report flow against real PostgreSQL. Skipped when docker
// is not available.
func TestShoppingListFlowPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := testhelpers.SetupTestDatabase(t)
	ctx := context.Background()

	chef := models.User{Email: "chef@example.com", Username: "chef", PasswordHash: "x"}
	buyer := models.User{Email: "buyer@example.com", Username: "buyer", PasswordHash: "x"}
	require.NoError(t, db.Create(&chef).Error)
	require.NoError(t, db.Create(&buyer).Error)

	flour := models.Ingredient{Name: "flour", MeasurementUnit: "g"}
	sugar := models.Ingredient{Name: "sugar", MeasurementUnit: "g"}
	require.NoError(t, db.Create(&flour).Error)
	require.NoError(t, db.Create(&sugar).Error)

	recipes := NewRecipeService(db)
	pancakes, err := recipes.Create(ctx, chef.ID, &RecipeInput{
		Name: "Pancakes", Text: "Fry.", CookingTime: 20,
		Ingredients: []IngredientAmount{{IngredientID: flour.ID, Amount: 200}},
	})
	require.NoError(t, err)
	cookies, err := recipes.Create(ctx, chef.ID, &RecipeInput{
		Name: "Cookies", Text: "Bake.", CookingTime: 25,
		Ingredients: []IngredientAmount{
			{IngredientID: flour.ID, Amount: 100},
			{IngredientID: sugar.ID, Amount: 50},
		},
	})
	require.NoError(t, err)

	collections := NewCollectionService(db)
	require.NoError(t, collections.AddToCart(ctx, buyer.ID, pancakes.ID))
	require.NoError(t, collections.AddToCart(ctx, buyer.ID, cookies.ID))
	require.ErrorIs(t, collections.AddToCart(ctx, buyer.ID, cookies.ID), ErrAlreadyExists)

	report, err := NewShoppingListService(db).Render(ctx, buyer.ID, time.Now())
	require.NoError(t, err)
	assert.Contains(t, report, "1. Flour - 300 g")
	assert.Contains(t, report, "2. Sugar - 50 g")
	assert.Contains(t, report, "- Cookies")
	assert.Contains(t, report, "- Pancakes")
}
