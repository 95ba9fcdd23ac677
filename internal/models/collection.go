package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FavoriteRecipe marks a recipe as favorited by a user, unique per pair.
type FavoriteRecipe struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
}

func (FavoriteRecipe) TableName() string {
	return "favorite_recipes"
}

func (f *FavoriteRecipe) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// ShoppingCartItem puts a recipe into a user's shopping cart, unique per pair.
type ShoppingCartItem struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`
}

func (ShoppingCartItem) TableName() string {
	return "shopping_cart_items"
}

func (s *ShoppingCartItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
