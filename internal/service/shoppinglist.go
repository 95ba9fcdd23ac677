package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	shoppingListHeader = "Shopping list (compiled %s):"
	productItem        = "%d. %s - %d %s"
	recipeListHeader   = "For the following recipes:"
	recipeItem         = "- %s"
	// EmptyListMessage is the fixed report for an empty cart
	EmptyListMessage = "Shopping list is empty."
)

// AggregatedIngredient is one output row of the shopping-list aggregation:
// total amount per distinct (name, measurement unit) pair.
type AggregatedIngredient struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// ShoppingListService builds the aggregated shopping list for a user's cart
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Aggregate joins the cart's recipes to their ingredient rows, groups by
// (name, unit), sums the amounts and sorts by name. The ingredient rows and
// the contributing recipe names are read in one transaction so concurrent
// cart mutation cannot produce a torn report.
func (s *ShoppingListService) Aggregate(ctx context.Context, userID uuid.UUID) ([]AggregatedIngredient, []string, error) {
	var ingredients []AggregatedIngredient
	var recipes []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartRecipes := tx.Table("shopping_cart_items").
			Select("recipe_id").
			Where("user_id = ?", userID)

		err := tx.Table("recipe_ingredients").
			Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS amount").
			Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
			Where("recipe_ingredients.recipe_id IN (?)", cartRecipes).
			Group("ingredients.name, ingredients.measurement_unit").
			Order("ingredients.name").
			Scan(&ingredients).Error
		if err != nil {
			return err
		}

		return tx.Table("recipes").
			Where("recipes.id IN (?)", cartRecipes).
			Order("recipes.name").
			Pluck("recipes.name", &recipes).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return ingredients, recipes, nil
}

// Render produces the plain-text shopping list report
func (s *ShoppingListService) Render(ctx context.Context, userID uuid.UUID, now time.Time) (string, error) {
	ingredients, recipes, err := s.Aggregate(ctx, userID)
	if err != nil {
		return "", err
	}
	return RenderShoppingList(ingredients, recipes, now), nil
}

// RenderShoppingList formats the aggregated rows into the report text:
// a timestamped header, one numbered line per ingredient, then the list of
// contributing recipes. An empty cart yields the fixed empty message.
func RenderShoppingList(ingredients []AggregatedIngredient, recipes []string, now time.Time) string {
	if len(ingredients) == 0 {
		return EmptyListMessage
	}

	lines := make([]string, 0, len(ingredients)+len(recipes)+2)
	lines = append(lines, fmt.Sprintf(shoppingListHeader, now.Format("2006-01-02 15:04:05")))

	for i, ing := range ingredients {
		lines = append(lines, fmt.Sprintf(productItem, i+1, capitalize(ing.Name), ing.Amount, ing.MeasurementUnit))
	}

	lines = append(lines, recipeListHeader)
	for _, recipe := range recipes {
		lines = append(lines, fmt.Sprintf(recipeItem, recipe))
	}

	return strings.Join(lines, "\n")
}

// capitalize upper-cases the first rune of a name
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
