package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// IngredientAmount is one (ingredient id, amount) entry of a recipe payload
type IngredientAmount struct {
	IngredientID uuid.UUID
	Amount       int
}

// RecipeInput carries the writable fields of a recipe
type RecipeInput struct {
	Name        string
	ImageURL    string
	Text        string
	CookingTime int
	Ingredients []IngredientAmount
}

// RecipeFilter narrows recipe listings
type RecipeFilter struct {
	// AuthorID filters by recipe author when non-nil
	AuthorID *uuid.UUID
	// ViewerID is the acting user, required for the two cart/favorite filters
	ViewerID *uuid.UUID
	// IsFavorited / IsInShoppingCart keep only recipes that are (or are not)
	// in the viewer's favorites / cart
	IsFavorited      *bool
	IsInShoppingCart *bool
	Limit            int
	Offset           int
}

// validateInput enforces the recipe invariants before anything is persisted:
// a non-empty ingredient list with no duplicate ids, amounts >= 1 and a
// cooking time >= 1.
func validateInput(in *RecipeInput) error {
	if in.CookingTime < models.MinCookingTime {
		return &ValidationError{Field: "cooking_time", Message: "must be at least 1"}
	}
	if len(in.Ingredients) == 0 {
		return ErrEmptyIngredients
	}

	seen := make(map[uuid.UUID]int, len(in.Ingredients))
	var dups []uuid.UUID
	for _, ing := range in.Ingredients {
		if ing.Amount < models.MinIngredientAmount {
			return &ValidationError{Field: "amount", Message: "must be at least 1"}
		}
		seen[ing.IngredientID]++
		if seen[ing.IngredientID] == 2 {
			dups = append(dups, ing.IngredientID)
		}
	}
	if len(dups) > 0 {
		return &DuplicateIngredientsError{IDs: dups}
	}
	return nil
}

// checkIngredientsExist verifies every referenced ingredient id
func (s *RecipeService) checkIngredientsExist(tx *gorm.DB, in *RecipeInput) error {
	ids := make([]uuid.UUID, len(in.Ingredients))
	for i, ing := range in.Ingredients {
		ids[i] = ing.IngredientID
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(ids) {
		return &ValidationError{Field: "ingredients", Message: "unknown ingredient id"}
	}
	return nil
}

// replaceIngredients deletes and recreates a recipe's ingredient rows
func replaceIngredients(tx *gorm.DB, recipeID uuid.UUID, ingredients []IngredientAmount) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	rows := make([]models.RecipeIngredient, len(ingredients))
	for i, ing := range ingredients {
		rows[i] = models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ing.IngredientID,
			Amount:       ing.Amount,
		}
	}
	return tx.Create(&rows).Error
}

// Create validates and persists a new recipe with its ingredient rows
func (s *RecipeService) Create(ctx context.Context, authorID uuid.UUID, in *RecipeInput) (*models.Recipe, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		ImageURL:    in.ImageURL,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkIngredientsExist(tx, in); err != nil {
			return err
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return replaceIngredients(tx, recipe.ID, in.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, recipe.ID)
}

// Update validates the payload and atomically replaces the recipe's fields
// and ingredient rows. Only the author may update.
func (s *RecipeService) Update(ctx context.Context, actorID, recipeID uuid.UUID, in *RecipeInput) (*models.Recipe, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if recipe.AuthorID != actorID {
			return ErrNotOwner
		}
		if err := s.checkIngredientsExist(tx, in); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":         in.Name,
			"text":         in.Text,
			"cooking_time": in.CookingTime,
		}
		if in.ImageURL != "" {
			updates["image_url"] = in.ImageURL
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}
		return replaceIngredients(tx, recipe.ID, in.Ingredients)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, recipeID)
}

// Get retrieves a recipe with its author and ingredient rows
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("RecipeIngredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Exists reports whether a recipe with the given id is present
func (s *RecipeService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a recipe and cascades its relations. Only the author may
// delete.
func (s *RecipeService) Delete(ctx context.Context, actorID, recipeID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if recipe.AuthorID != actorID {
			return ErrNotOwner
		}

		for _, rel := range []interface{}{
			&models.RecipeIngredient{},
			&models.FavoriteRecipe{},
			&models.ShoppingCartItem{},
		} {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(rel).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&recipe).Error
	})
}

// List returns recipes matching the filter, newest first
func (s *RecipeService) List(ctx context.Context, filter RecipeFilter) ([]models.Recipe, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.ViewerID != nil {
		if filter.IsFavorited != nil {
			sub := "EXISTS (SELECT 1 FROM favorite_recipes f WHERE f.user_id = ? AND f.recipe_id = recipes.id)"
			if *filter.IsFavorited {
				query = query.Where(sub, *filter.ViewerID)
			} else {
				query = query.Where("NOT "+sub, *filter.ViewerID)
			}
		}
		if filter.IsInShoppingCart != nil {
			sub := "EXISTS (SELECT 1 FROM shopping_cart_items c WHERE c.user_id = ? AND c.recipe_id = recipes.id)"
			if *filter.IsInShoppingCart {
				query = query.Where(sub, *filter.ViewerID)
			} else {
				query = query.Where("NOT "+sub, *filter.ViewerID)
			}
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []models.Recipe
	err := query.
		Preload("Author").
		Preload("RecipeIngredients.Ingredient").
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// Flags reports which of the given recipes the viewer has favorited and
// which are in their cart.
func (s *RecipeService) Flags(ctx context.Context, viewerID uuid.UUID, recipeIDs []uuid.UUID) (favorited, inCart map[uuid.UUID]bool, err error) {
	favorited = make(map[uuid.UUID]bool)
	inCart = make(map[uuid.UUID]bool)
	if viewerID == uuid.Nil || len(recipeIDs) == 0 {
		return favorited, inCart, nil
	}

	var favs []models.FavoriteRecipe
	if err = s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
		Find(&favs).Error; err != nil {
		return nil, nil, err
	}
	for _, f := range favs {
		favorited[f.RecipeID] = true
	}

	var items []models.ShoppingCartItem
	if err = s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id IN ?", viewerID, recipeIDs).
		Find(&items).Error; err != nil {
		return nil, nil, err
	}
	for _, it := range items {
		inCart[it.RecipeID] = true
	}
	return favorited, inCart, nil
}
