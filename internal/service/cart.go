package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
)

// CartService handles the shopping-cart toggle and the shopping-list
// aggregation.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// ShoppingItem is one aggregated line of the shopping list.
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Total           uint
}

// Add queues a recipe for the user's shopping list.
func (s *CartService) Add(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyInCart
	}

	entry := models.ShoppingCart{UserID: userID, RecipeID: recipeID}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyInCart
		}
		return nil, err
	}
	return &recipe, nil
}

// Remove takes a recipe out of the cart or reports that it was not there.
func (s *CartService) Remove(ctx context.Context, userID, recipeID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCart{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotInCart
	}
	return nil
}

// ShoppingList sums ingredient amounts across every recipe in the user's
// cart, grouped by ingredient identity. One aggregate query; ordering by
// name keeps the output stable across calls.
func (s *CartService) ShoppingList(ctx context.Context, userID uint) ([]ShoppingItem, error) {
	var items []ShoppingItem
	err := s.db.WithContext(ctx).
		Model(&models.IngredientAmount{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_amounts.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_amounts.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = ingredient_amounts.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RenderShoppingList formats the aggregated items as the downloadable text
// file, one "{name} - {amount} {unit}" line per ingredient.
func RenderShoppingList(items []ShoppingItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s - %d %s", item.Name, item.Total, item.MeasurementUnit))
	}
	return strings.Join(lines, "\n")
}
