package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodgram-project/backend/internal/middleware"
	"github.com/foodgram-project/backend/internal/service"
	"github.com/foodgram-project/backend/internal/types"
)

type UserHandler struct {
	authService   *service.AuthService
	userService   *service.UserService
	followService *service.FollowService
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService, followService *service.FollowService) *UserHandler {
	return &UserHandler{
		authService:   authService,
		userService:   userService,
		followService: followService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListUsers)
		users.POST("", h.Register)
		// "me" and "subscriptions" are dispatched inside GetUser because gin
		// rejects static siblings of a :id segment.
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetUser)
		users.POST("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Unsubscribe)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit, offset := pageParams(c)

	users, count, err := h.userService.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	rendered, err := h.userService.RenderUsers(c.Request.Context(), users, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginate(c, count, page, limit, rendered))
}

// Register creates a user and issues its first token in the same request.
func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"auth_token": token,
	})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	switch c.Param("id") {
	case "me":
		h.me(c)
		return
	case "subscriptions":
		h.subscriptions(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user, err := h.userService.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	subscribed := false
	if viewerID := middleware.ViewerID(c); viewerID != nil {
		subscribed, err = h.followService.IsSubscribed(c.Request.Context(), *viewerID, user.ID)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, service.RenderUser(user, subscribed))
}

func (h *UserHandler) me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.RenderUser(user, false))
}

func (h *UserHandler) subscriptions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	page, limit, offset := pageParams(c)
	recipesLimit, _ := strconv.Atoi(c.DefaultQuery("recipes_limit", "0"))

	authors, count, err := h.followService.Subscriptions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]types.SubscriptionResponse, 0, len(authors))
	for i := range authors {
		rendered, err := h.followService.RenderSubscription(c.Request.Context(), userID, &authors[i], recipesLimit)
		if err != nil {
			respondError(c, err)
			return
		}
		results = append(results, *rendered)
	}

	c.JSON(http.StatusOK, paginate(c, count, page, limit, results))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	author, err := h.followService.Subscribe(c.Request.Context(), userID, uint(authorID))
	if err != nil {
		respondError(c, err)
		return
	}

	recipesLimit, _ := strconv.Atoi(c.DefaultQuery("recipes_limit", "0"))
	rendered, err := h.followService.RenderSubscription(c.Request.Context(), userID, author, recipesLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rendered)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.followService.Unsubscribe(c.Request.Context(), userID, uint(authorID)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
