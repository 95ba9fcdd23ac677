package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/service"
)

type UserHandler struct {
	userService  *service.UserService
	imageService *service.ImageService
	authService  *service.AuthService
}

func NewUserHandler(userService *service.UserService, imageService *service.ImageService, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		imageService: imageService,
		authService:  authService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListUsers)

		authed := users.Group("", middleware.AuthMiddleware(h.authService))
		{
			authed.GET("/me", h.Me)
			authed.PUT("/me/avatar", h.SetAvatar)
			authed.DELETE("/me/avatar", h.DeleteAvatar)
			authed.GET("/subscriptions", h.Subscriptions)
			authed.POST("/:id/subscribe", h.Subscribe)
			authed.DELETE("/:id/subscribe", h.Unsubscribe)
		}

		users.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetUser)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, offset := paginationParams(c, 10)
	users, total, err := h.userService.List(c.Request.Context(), limit, offset)
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewerID, _ := middleware.UserID(c)
	ids := make([]uuid.UUID, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	subscribed, err := h.userService.IsSubscribed(c.Request.Context(), viewerID, ids)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = newUserResponse(&users[i], subscribed[users[i].ID])
	}
	c.JSON(http.StatusOK, gin.H{"users": resp, "count": total})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewerID, _ := middleware.UserID(c)
	subscribed, err := h.userService.IsSubscribed(c.Request.Context(), viewerID, []uuid.UUID{id})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user, subscribed[id]))
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user, false))
}

func (h *UserHandler) SetAvatar(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	avatarURL := req.Avatar
	if service.IsDataURI(req.Avatar) {
		uploaded, err := h.imageService.UploadDataURI(c.Request.Context(), req.Avatar, "avatar_images")
		if err != nil {
			abortWithError(c, err)
			return
		}
		avatarURL = uploaded
	}

	if err := h.userService.SetAvatar(c.Request.Context(), userID, avatarURL); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": avatarURL})
}

func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	if err := h.userService.SetAvatar(c.Request.Context(), userID, ""); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userID, _ := middleware.UserID(c)
	if err := h.userService.Subscribe(c.Request.Context(), userID, authorID); err != nil {
		abortWithError(c, err)
		return
	}

	author, err := h.userService.Get(c.Request.Context(), authorID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.userDetail(c, author, true))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	userID, _ := middleware.UserID(c)
	if err := h.userService.Unsubscribe(c.Request.Context(), userID, authorID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	limit, offset := paginationParams(c, 6)

	recipesLimit := 0
	if v := c.Query("recipes_limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			recipesLimit = n
		}
	}

	authors, total, err := h.userService.Subscriptions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		abortWithError(c, err)
		return
	}

	ids := make([]uuid.UUID, len(authors))
	for i := range authors {
		ids[i] = authors[i].ID
	}
	recipes, counts, err := h.userService.RecipesByAuthors(c.Request.Context(), ids, recipesLimit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]UserDetailResponse, len(authors))
	for i := range authors {
		detail := UserDetailResponse{
			UserResponse: newUserResponse(&authors[i], true),
			Recipes:      []RecipeBasicResponse{},
			RecipesCount: counts[authors[i].ID],
		}
		for _, r := range recipes[authors[i].ID] {
			recipe := r
			detail.Recipes = append(detail.Recipes, newRecipeBasicResponse(&recipe))
		}
		resp[i] = detail
	}
	c.JSON(http.StatusOK, gin.H{"results": resp, "count": total})
}

// userDetail assembles the author view returned after subscribing
func (h *UserHandler) userDetail(c *gin.Context, author *models.User, subscribed bool) UserDetailResponse {
	recipes, counts, err := h.userService.RecipesByAuthors(c.Request.Context(), []uuid.UUID{author.ID}, 0)
	detail := UserDetailResponse{
		UserResponse: newUserResponse(author, subscribed),
		Recipes:      []RecipeBasicResponse{},
	}
	if err != nil {
		return detail
	}
	detail.RecipesCount = counts[author.ID]
	for _, r := range recipes[author.ID] {
		recipe := r
		detail.Recipes = append(detail.Recipes, newRecipeBasicResponse(&recipe))
	}
	return detail
}
