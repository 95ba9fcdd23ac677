package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// MinCookingTime is the smallest accepted cooking time in minutes
	MinCookingTime = 1
	// MinIngredientAmount is the smallest accepted ingredient amount
	MinIngredientAmount = 1
)

type Recipe struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	AuthorID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"-"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"author"`
	Name        string         `gorm:"size:256;not null" json:"name"`
	ImageURL    string         `gorm:"size:255" json:"image"`
	Text        string         `gorm:"type:text" json:"text"`
	CookingTime int            `gorm:"not null" json:"cooking_time"`

	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient joins a recipe to one ingredient with an amount. Rows are
// deleted and recreated wholesale when a recipe's ingredient list changes.
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"-"`
	RecipeID     uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"-"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
	Amount       int        `gorm:"not null" json:"amount"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
