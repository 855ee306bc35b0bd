package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
)

// FavoriteService handles the favorite toggle.
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add bookmarks a recipe for the user. The existence pre-check produces the
// friendly error; the unique constraint catches concurrent duplicates.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyFavorited
	}

	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := s.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}
	return &recipe, nil
}

// Remove deletes the bookmark or reports that it was not there.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFavorited
	}
	return nil
}
