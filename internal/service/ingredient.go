package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/models"
)

// IngredientService handles ingredient lookups and seeding
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// List returns ingredients, optionally filtered by a case-insensitive name
// prefix, ordered by name.
func (s *IngredientService) List(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{})
	if namePrefix != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", namePrefix+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Get retrieves one ingredient by id
func (s *IngredientService) Get(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// Import inserts ingredients in bulk, skipping (name, unit) pairs that are
// already present. Returns the number of rows created.
func (s *IngredientService) Import(ctx context.Context, ingredients []models.Ingredient) (int, error) {
	created := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range ingredients {
			var existing models.Ingredient
			err := tx.Where("name = ? AND measurement_unit = ?",
				ingredients[i].Name, ingredients[i].MeasurementUnit).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Create(&ingredients[i]).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
