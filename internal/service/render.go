package service

import (
	"context"

	"github.com/foodgram-project/backend/internal/models"
	"github.com/foodgram-project/backend/internal/types"
)

// Render assembles the nested read shape for a batch of recipes. The
// per-viewer flags (is_favorited, is_in_shopping_cart, author.is_subscribed)
// are computed with one query per relation over the whole batch.
func (s *RecipeService) Render(ctx context.Context, recipes []models.Recipe, viewerID *uint) ([]types.RecipeResponse, error) {
	recipeIDs := make([]uint, 0, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		if r.AuthorID != nil {
			authorIDs = append(authorIDs, *r.AuthorID)
		}
	}

	favorited := map[uint]bool{}
	inCart := map[uint]bool{}
	subscribed := map[uint]bool{}
	if viewerID != nil && len(recipes) > 0 {
		var ids []uint
		if err := s.db.WithContext(ctx).Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id IN ?", *viewerID, recipeIDs).
			Pluck("recipe_id", &ids).Error; err != nil {
			return nil, err
		}
		for _, id := range ids {
			favorited[id] = true
		}

		ids = nil
		if err := s.db.WithContext(ctx).Model(&models.ShoppingCart{}).
			Where("user_id = ? AND recipe_id IN ?", *viewerID, recipeIDs).
			Pluck("recipe_id", &ids).Error; err != nil {
			return nil, err
		}
		for _, id := range ids {
			inCart[id] = true
		}

		if len(authorIDs) > 0 {
			ids = nil
			if err := s.db.WithContext(ctx).Model(&models.Follow{}).
				Where("user_id = ? AND author_id IN ?", *viewerID, authorIDs).
				Pluck("author_id", &ids).Error; err != nil {
				return nil, err
			}
			for _, id := range ids {
				subscribed[id] = true
			}
		}
	}

	out := make([]types.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		resp := types.RecipeResponse{
			ID:               r.ID,
			Name:             r.Name,
			Tags:             renderTags(r.Tags),
			Ingredients:      renderIngredientAmounts(r.IngredientAmounts),
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		}
		if r.Author != nil {
			resp.Author = RenderUser(r.Author, subscribed[r.Author.ID])
		}
		out = append(out, resp)
	}
	return out, nil
}

// RenderOne assembles the read shape for one recipe.
func (s *RecipeService) RenderOne(ctx context.Context, recipe *models.Recipe, viewerID *uint) (*types.RecipeResponse, error) {
	rendered, err := s.Render(ctx, []models.Recipe{*recipe}, viewerID)
	if err != nil {
		return nil, err
	}
	return &rendered[0], nil
}

func renderTags(tags []models.Tag) []types.TagResponse {
	out := make([]types.TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, types.TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug})
	}
	return out
}

func renderIngredientAmounts(amounts []models.IngredientAmount) []types.RecipeIngredientResponse {
	out := make([]types.RecipeIngredientResponse, 0, len(amounts))
	for _, a := range amounts {
		resp := types.RecipeIngredientResponse{
			ID:     a.IngredientID,
			Amount: a.Amount,
		}
		if a.Ingredient != nil {
			resp.Name = a.Ingredient.Name
			resp.MeasurementUnit = a.Ingredient.MeasurementUnit
		}
		out = append(out, resp)
	}
	return out
}

// RenderUser builds the public user shape with a precomputed subscription flag.
func RenderUser(user *models.User, isSubscribed bool) types.UserResponse {
	return types.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}

// RenderRecipeShort builds the compact recipe shape used by the toggles and
// subscription listings.
func RenderRecipeShort(recipe *models.Recipe) types.RecipeShortResponse {
	return types.RecipeShortResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
