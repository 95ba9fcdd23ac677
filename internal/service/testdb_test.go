package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/platewise/backend/internal/database"
	"github.com/platewise/backend/internal/models"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// A single connection keeps the memory database alive for the test's
// lifetime.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ing := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ing).Error)
	return &ing
}

func createTestRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, ingredients []IngredientAmount) *models.Recipe {
	t.Helper()
	recipe, err := NewRecipeService(db).Create(context.Background(), author.ID, &RecipeInput{
		Name:        name,
		Text:        fmt.Sprintf("How to make %s.", name),
		CookingTime: 30,
		Ingredients: ingredients,
	})
	require.NoError(t, err)
	return recipe
}
