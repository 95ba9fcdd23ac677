package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/backend/internal/service"
)

// ShortLinkHandler resolves /s/:id short links to the recipe page.
type ShortLinkHandler struct {
	recipeService *service.RecipeService
}

func NewShortLinkHandler(recipeService *service.RecipeService) *ShortLinkHandler {
	return &ShortLinkHandler{recipeService: recipeService}
}

func (h *ShortLinkHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/s/:id", h.Resolve)
}

func (h *ShortLinkHandler) Resolve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
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

	c.Redirect(http.StatusMovedPermanently, "/recipes/"+id.String())
}
