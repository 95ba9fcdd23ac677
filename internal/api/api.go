package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/service"
)

// SetupAPI wires services and handlers onto the /api/v1 group and the
// short-link route at the engine root. redisClient and s3Config may be nil;
// rate limiting and image uploads degrade gracefully without them.
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config, cfg *config.Config) {
	authService := service.NewAuthService(db, cfg.JWTSecret)
	userService := service.NewUserService(db)
	ingredientService := service.NewIngredientService(db)
	recipeService := service.NewRecipeService(db)
	collectionService := service.NewCollectionService(db)
	shoppingListService := service.NewShoppingListService(db)
	imageService := service.NewImageService(s3Config)

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.DefaultRateLimitConfig())
	}

	v1 := router.Group("/api/v1")
	{
		authHandler := NewAuthHandler(authService)
		userHandler := NewUserHandler(userService, imageService, authService)
		ingredientHandler := NewIngredientHandler(ingredientService)
		recipeHandler := NewRecipeHandler(
			recipeService,
			collectionService,
			shoppingListService,
			userService,
			imageService,
			authService,
			rateLimiter,
			cfg.BaseURL,
		)

		authHandler.RegisterRoutes(v1)
		userHandler.RegisterRoutes(v1)
		ingredientHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
	}

	NewShortLinkHandler(recipeService).RegisterRoutes(router)
}
