package database

import (
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// Migrate brings the schema up to date. The unique indexes on the join
// tables are what enforce single favorite/cart/subscription per pair.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Subscription{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.FavoriteRecipe{},
		&models.ShoppingCartItem{},
	)
}
