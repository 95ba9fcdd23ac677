package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/service"
)

type RecipeHandler struct {
	recipeService     *service.RecipeService
	collectionService *service.CollectionService
	shoppingListSvc   *service.ShoppingListService
	userService       *service.UserService
	imageService      *service.ImageService
	authService       *service.AuthService
	rateLimiter       *middleware.RateLimiter
	baseURL           string
}

func NewRecipeHandler(
	recipeService *service.RecipeService,
	collectionService *service.CollectionService,
	shoppingListSvc *service.ShoppingListService,
	userService *service.UserService,
	imageService *service.ImageService,
	authService *service.AuthService,
	rateLimiter *middleware.RateLimiter,
	baseURL string,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:     recipeService,
		collectionService: collectionService,
		shoppingListSvc:   shoppingListSvc,
		userService:       userService,
		imageService:      imageService,
		authService:       authService,
		rateLimiter:       rateLimiter,
		baseURL:           baseURL,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListRecipes)

		authed := recipes.Group("", middleware.AuthMiddleware(h.authService))
		if h.rateLimiter != nil {
			authed.Use(h.rateLimiter.RateLimitMiddleware())
		}
		{
			authed.POST("", h.CreateRecipe)
			authed.PUT("/:id", h.UpdateRecipe)
			authed.DELETE("/:id", h.DeleteRecipe)
			authed.POST("/:id/favorite", h.Favorite)
			authed.DELETE("/:id/favorite", h.Unfavorite)
			authed.POST("/:id/shopping_cart", h.AddToCart)
			authed.DELETE("/:id/shopping_cart", h.RemoveFromCart)
			authed.GET("/download_shopping_cart", h.DownloadShoppingCart)
		}

		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetRecipe)
		recipes.GET("/:id/get-link", h.GetLink)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{}
	filter.Limit, filter.Offset = paginationParams(c, 6)

	if viewerID, ok := middleware.UserID(c); ok {
		filter.ViewerID = &viewerID
		filter.IsFavorited = boolQuery(c, "is_favorited")
		filter.IsInShoppingCart = boolQuery(c, "is_in_shopping_cart")
	}
	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		filter.AuthorID = &authorID
	}

	recipes, total, err := h.recipeService.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewerID, _ := middleware.UserID(c)
	recipeIDs := make([]uuid.UUID, len(recipes))
	authorIDs := make([]uuid.UUID, len(recipes))
	for i := range recipes {
		recipeIDs[i] = recipes[i].ID
		authorIDs[i] = recipes[i].AuthorID
	}

	favorited, inCart, err := h.recipeService.Flags(c.Request.Context(), viewerID, recipeIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	subscribed, err := h.userService.IsSubscribed(c.Request.Context(), viewerID, authorIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		r := recipes[i]
		resp[i] = newRecipeResponse(&r, favorited[r.ID], inCart[r.ID], subscribed[r.AuthorID])
	}
	c.JSON(http.StatusOK, gin.H{"recipes": resp, "count": total})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewerID, _ := middleware.UserID(c)
	favorited, inCart, err := h.recipeService.Flags(c.Request.Context(), viewerID, []uuid.UUID{id})
	if err != nil {
		abortWithError(c, err)
		return
	}
	subscribed, err := h.userService.IsSubscribed(c.Request.Context(), viewerID, []uuid.UUID{recipe.AuthorID})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(recipe, favorited[id], inCart[id], subscribed[recipe.AuthorID]))
}

// resolveImage uploads base64 data-URI payloads to object storage and passes
// plain URLs through untouched.
func (h *RecipeHandler) resolveImage(c *gin.Context, image string) (string, error) {
	if image == "" || !service.IsDataURI(image) {
		return image, nil
	}
	return h.imageService.UploadDataURI(c.Request.Context(), image, "recipes_images")
}

func (h *RecipeHandler) recipeInput(c *gin.Context, req *RecipeRequest) (*service.RecipeInput, error) {
	imageURL, err := h.resolveImage(c, req.Image)
	if err != nil {
		return nil, err
	}

	in := &service.RecipeInput{
		Name:        req.Name,
		ImageURL:    imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	for _, ing := range req.Ingredients {
		in.Ingredients = append(in.Ingredients, service.IngredientAmount{
			IngredientID: ing.ID,
			Amount:       ing.Amount,
		})
	}
	return in, nil
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	in, err := h.recipeInput(c, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), userID, in)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": newRecipeResponse(recipe, false, false, false)})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserID(c)
	in, err := h.recipeInput(c, &req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		abortWithError(c, err)
		return
	}

	favorited, inCart, err := h.recipeService.Flags(c.Request.Context(), userID, []uuid.UUID{id})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": newRecipeResponse(recipe, favorited[id], inCart[id], false)})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, _ := middleware.UserID(c)
	if err := h.recipeService.Delete(c.Request.Context(), userID, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// toggle handles the shared POST body of the favorite and cart endpoints
func (h *RecipeHandler) toggle(c *gin.Context, add func(uuid.UUID, uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, _ := middleware.UserID(c)
	if err := add(userID, id); err != nil {
		abortWithError(c, err)
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRecipeBasicResponse(recipe))
}

// untoggle handles the shared DELETE body of the favorite and cart endpoints
func (h *RecipeHandler) untoggle(c *gin.Context, remove func(uuid.UUID, uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	userID, _ := middleware.UserID(c)
	if err := remove(userID, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) Favorite(c *gin.Context) {
	h.toggle(c, func(userID, recipeID uuid.UUID) error {
		return h.collectionService.AddFavorite(c.Request.Context(), userID, recipeID)
	})
}

func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	h.untoggle(c, func(userID, recipeID uuid.UUID) error {
		return h.collectionService.RemoveFavorite(c.Request.Context(), userID, recipeID)
	})
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.toggle(c, func(userID, recipeID uuid.UUID) error {
		return h.collectionService.AddToCart(c.Request.Context(), userID, recipeID)
	})
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.untoggle(c, func(userID, recipeID uuid.UUID) error {
		return h.collectionService.RemoveFromCart(c.Request.Context(), userID, recipeID)
	})
}

// DownloadShoppingCart renders the aggregated shopping list as a text
// attachment. An empty cart yields the fixed empty-list message.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	now := time.Now()
	content, err := h.shoppingListSvc.Render(c.Request.Context(), userID, now)
	if err != nil {
		abortWithError(c, err)
		return
	}

	fileName := fmt.Sprintf("Shopping_cart_%s.txt", now.Format("20060102150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

// GetLink returns the short link for a recipe
func (h *RecipeHandler) GetLink(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	exists, err := h.recipeService.Exists(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"short-link": fmt.Sprintf("%s/s/%s", h.baseURL, id)})
}
