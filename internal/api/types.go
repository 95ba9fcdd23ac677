package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/service"
)

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AvatarRequest carries a base64 data-URI avatar image
type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// RecipeIngredientPayload is one ingredient entry of a recipe write
type RecipeIngredientPayload struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount" binding:"required"`
}

// RecipeRequest represents the request body for creating or updating a recipe
type RecipeRequest struct {
	Name        string                    `json:"name" binding:"required,max=256"`
	Image       string                    `json:"image"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required"`
	Ingredients []RecipeIngredientPayload `json:"ingredients"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Avatar       string    `json:"avatar"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// RecipeBasicResponse is the short recipe view embedded in user detail and
// collection responses
type RecipeBasicResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// UserDetailResponse embeds the author's recipes and their count
type UserDetailResponse struct {
	UserResponse
	Recipes      []RecipeBasicResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// RecipeIngredientResponse is one ingredient row of a full recipe view
type RecipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// RecipeResponse is the full recipe view
type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
	CreatedAt        time.Time                  `json:"created_at"`
}

func newUserResponse(u *models.User, isSubscribed bool) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Avatar:       u.AvatarURL,
		IsSubscribed: isSubscribed,
	}
}

func newRecipeBasicResponse(r *models.Recipe) RecipeBasicResponse {
	return RecipeBasicResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

func newRecipeResponse(r *models.Recipe, favorited, inCart, authorSubscribed bool) RecipeResponse {
	ingredients := make([]RecipeIngredientResponse, len(r.RecipeIngredients))
	for i, ri := range r.RecipeIngredients {
		ingredients[i] = RecipeIngredientResponse{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		}
	}

	return RecipeResponse{
		ID:               r.ID,
		Author:           newUserResponse(&r.Author, authorSubscribed),
		Ingredients:      ingredients,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             r.Name,
		Image:            r.ImageURL,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		CreatedAt:        r.CreatedAt,
	}
}

// paginationParams parses limit/offset query parameters
func paginationParams(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// boolQuery parses a tri-state boolean query parameter
func boolQuery(c *gin.Context, name string) *bool {
	v, exists := c.GetQuery(name)
	if !exists {
		return nil
	}
	b := v == "1" || v == "true" || v == "True"
	return &b
}

// abortWithError maps service errors to HTTP status codes
func abortWithError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var dupErr *service.DuplicateIngredientsError

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyExists),
		errors.Is(err, service.ErrSelfSubscribe),
		errors.Is(err, service.ErrEmptyIngredients),
		errors.Is(err, service.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &dupErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": dupErr.Error(), "field": "ingredients"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
