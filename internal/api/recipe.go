package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodgram-project/backend/internal/middleware"
	"github.com/foodgram-project/backend/internal/service"
	"github.com/foodgram-project/backend/internal/types"
)

type RecipeHandler struct {
	authService     *service.AuthService
	recipeService   *service.RecipeService
	favoriteService *service.FavoriteService
	cartService     *service.CartService
	imageService    *service.ImageService
}

func NewRecipeHandler(
	authService *service.AuthService,
	recipeService *service.RecipeService,
	favoriteService *service.FavoriteService,
	cartService *service.CartService,
	imageService *service.ImageService,
) *RecipeHandler {
	return &RecipeHandler{
		authService:     authService,
		recipeService:   recipeService,
		favoriteService: favoriteService,
		cartService:     cartService,
		imageService:    imageService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListRecipes)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.CreateRecipe)
		// download_shopping_cart is dispatched inside GetRecipe because gin
		// rejects static siblings of a :id segment.
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.PATCH("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteRecipe)
		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.authService), h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.authService), h.UnfavoriteRecipe)
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.AddToShoppingCart)
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.RemoveFromShoppingCart)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, limit, offset := pageParams(c)

	filter := service.RecipeFilter{
		TagSlugs: c.QueryArray("tags"),
		ViewerID: middleware.ViewerID(c),
		Limit:    limit,
		Offset:   offset,
	}
	if author := c.Query("author"); author != "" {
		id, err := strconv.ParseUint(author, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid author id"})
			return
		}
		authorID := uint(id)
		filter.AuthorID = &authorID
	}
	filter.Favorited = c.Query("is_favorited") == "1" || c.Query("is_favorited") == "true"
	filter.InCart = c.Query("is_in_shopping_cart") == "1" || c.Query("is_in_shopping_cart") == "true"

	recipes, count, err := h.recipeService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	rendered, err := h.recipeService.Render(c.Request.Context(), recipes, filter.ViewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginate(c, count, page, limit, rendered))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	if c.Param("id") == "download_shopping_cart" {
		h.DownloadShoppingCart(c)
		return
	}

	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	rendered, err := h.recipeService.RenderOne(c.Request.Context(), recipe, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rendered)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageURL, err := h.storeImage(c, req.Image)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), userID, imageURL, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	viewerID := userID
	rendered, err := h.recipeService.RenderOne(c.Request.Context(), recipe, &viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rendered)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageURL, err := h.storeImage(c, req.Image)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), id, userID, imageURL, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	viewerID := userID
	rendered, err := h.recipeService.RenderOne(c.Request.Context(), recipe, &viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rendered)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.favoriteService.Add(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service.RenderRecipeShort(recipe))
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddToShoppingCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.cartService.Add(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service.RenderRecipeShort(recipe))
}

func (h *RecipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart renders the aggregated shopping list as an attached
// text file.
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	items, err := h.cartService.ShoppingList(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	body := service.RenderShoppingList(items)
	c.Header("Content-Disposition", "attachment; filename=shopping_cart.txt")
	c.Data(http.StatusOK, "text/plain", []byte(body))
}

// storeImage persists the base64 payload when present; an empty payload
// keeps the existing image on update.
func (h *RecipeHandler) storeImage(c *gin.Context, dataURI string) (string, error) {
	if dataURI == "" {
		return "", nil
	}
	return h.imageService.SaveDataURI(c.Request.Context(), dataURI)
}

func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return 0, false
	}
	return uint(id), true
}
