package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// CollectionService handles the favorite and shopping-cart toggles. Both are
// user-recipe pairs with identical add/remove semantics over separate tables.
type CollectionService struct {
	db *gorm.DB
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

// addRelation creates a user-recipe row, reporting duplicates instead of
// silently ignoring them. The composite unique index backs this up under
// concurrent requests.
func (s *CollectionService) addRelation(ctx context.Context, model interface{}, userID, recipeID uuid.UUID) error {
	var count int64
	err := s.db.WithContext(ctx).Model(model).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyExists
	}

	var recipeCount int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&recipeCount).Error; err != nil {
		return err
	}
	if recipeCount == 0 {
		return ErrNotFound
	}

	switch model.(type) {
	case *models.FavoriteRecipe:
		err = s.db.WithContext(ctx).Create(&models.FavoriteRecipe{UserID: userID, RecipeID: recipeID}).Error
	case *models.ShoppingCartItem:
		err = s.db.WithContext(ctx).Create(&models.ShoppingCartItem{UserID: userID, RecipeID: recipeID}).Error
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	return err
}

// removeRelation deletes a user-recipe row, failing with not-found if absent
func (s *CollectionService) removeRelation(ctx context.Context, model interface{}, userID, recipeID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddFavorite marks a recipe as favorited by the user
func (s *CollectionService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.addRelation(ctx, &models.FavoriteRecipe{}, userID, recipeID)
}

// RemoveFavorite clears a favorite mark
func (s *CollectionService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.removeRelation(ctx, &models.FavoriteRecipe{}, userID, recipeID)
}

// AddToCart puts a recipe into the user's shopping cart
func (s *CollectionService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.addRelation(ctx, &models.ShoppingCartItem{}, userID, recipeID)
}

// RemoveFromCart takes a recipe out of the user's shopping cart
func (s *CollectionService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.removeRelation(ctx, &models.ShoppingCartItem{}, userID, recipeID)
}
