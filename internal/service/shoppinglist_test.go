package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingListAggregate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShoppingListService(db)
	collections := NewCollectionService(db)
	chef := createTestUser(t, db, "chef")
	buyer := createTestUser(t, db, "buyer")

	flour := createTestIngredient(t, db, "flour", "g")
	sugar := createTestIngredient(t, db, "sugar", "g")
	milk := createTestIngredient(t, db, "milk", "ml")

	pancakes := createTestRecipe(t, db, chef, "Pancakes", []IngredientAmount{
		{IngredientID: flour.ID, Amount: 200},
		{IngredientID: milk.ID, Amount: 300},
	})
	cookies := createTestRecipe(t, db, chef, "Cookies", []IngredientAmount{
		{IngredientID: flour.ID, Amount: 100},
		{IngredientID: sugar.ID, Amount: 50},
	})
	// not in the cart, must not contribute
	createTestRecipe(t, db, chef, "Cake", []IngredientAmount{
		{IngredientID: sugar.ID, Amount: 999},
	})

	ctx := context.Background()
	require.NoError(t, collections.AddToCart(ctx, buyer.ID, pancakes.ID))
	require.NoError(t, collections.AddToCart(ctx, buyer.ID, cookies.ID))

	ingredients, recipes, err := svc.Aggregate(ctx, buyer.ID)
	require.NoError(t, err)

	// summed per (name, unit) pair, ordered by name
	require.Len(t, ingredients, 3)
	assert.Equal(t, AggregatedIngredient{Name: "flour", MeasurementUnit: "g", Amount: 300}, ingredients[0])
	assert.Equal(t, AggregatedIngredient{Name: "milk", MeasurementUnit: "ml", Amount: 300}, ingredients[1])
	assert.Equal(t, AggregatedIngredient{Name: "sugar", MeasurementUnit: "g", Amount: 50}, ingredients[2])

	assert.Equal(t, []string{"Cookies", "Pancakes"}, recipes)
}

func TestShoppingListSameNameDifferentUnit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShoppingListService(db)
	collections := NewCollectionService(db)
	chef := createTestUser(t, db, "chef")
	buyer := createTestUser(t, db, "buyer")

	gramSugar := createTestIngredient(t, db, "sugar", "g")
	cubeSugar := createTestIngredient(t, db, "sugar", "cubes")

	recipe := createTestRecipe(t, db, chef, "Tea party", []IngredientAmount{
		{IngredientID: gramSugar.ID, Amount: 20},
		{IngredientID: cubeSugar.ID, Amount: 4},
	})

	ctx := context.Background()
	require.NoError(t, collections.AddToCart(ctx, buyer.ID, recipe.ID))

	ingredients, _, err := svc.Aggregate(ctx, buyer.ID)
	require.NoError(t, err)

	// same name but different units stay separate rows
	require.Len(t, ingredients, 2)
	for _, ing := range ingredients {
		assert.Equal(t, "sugar", ing.Name)
	}
}

func TestRenderShoppingList(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	out := RenderShoppingList(
		[]AggregatedIngredient{
			{Name: "flour", MeasurementUnit: "g", Amount: 300},
			{Name: "sugar", MeasurementUnit: "g", Amount: 50},
		},
		[]string{"Cookies", "Pancakes"},
		now,
	)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Shopping list (compiled 2024-06-01 12:30:00):", lines[0])
	assert.Equal(t, "1. Flour - 300 g", lines[1])
	assert.Equal(t, "2. Sugar - 50 g", lines[2])
	assert.Equal(t, "For the following recipes:", lines[3])
	assert.Equal(t, "- Cookies", lines[4])
	assert.Equal(t, "- Pancakes", lines[5])
}

func TestRenderEmptyShoppingList(t *testing.T) {
	out := RenderShoppingList(nil, nil, time.Now())
	assert.Equal(t, EmptyListMessage, out)
}

func TestShoppingListEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewShoppingListService(db)
	buyer := createTestUser(t, db, "buyer")

	report, err := svc.Render(context.Background(), buyer.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, EmptyListMessage, report)
}
