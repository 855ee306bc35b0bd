package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
	"github.com/foodgram-project/backend/internal/types"
)

// FollowService handles subscriptions between users.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Subscribe creates a follow from userID to authorID. Self-follows and
// duplicates are rejected here regardless of any database constraint.
func (s *FollowService) Subscribe(ctx context.Context, userID, authorID uint) (*models.User, error) {
	if userID == authorID {
		return nil, ErrSelfFollow
	}

	var author models.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyFollowing
	}

	follow := models.Follow{UserID: userID, AuthorID: authorID}
	if err := s.db.WithContext(ctx).Create(&follow).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}
	return &author, nil
}

// Unsubscribe removes the follow or reports that it did not exist.
func (s *FollowService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// IsSubscribed reports whether userID follows authorID.
func (s *FollowService) IsSubscribed(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	return count > 0, err
}

// Subscriptions returns a page of the users that userID follows, plus the
// unpaginated total.
func (s *FollowService) Subscriptions(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var authors []models.User
	err := base.Order("follows.id DESC").Limit(limit).Offset(offset).Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}
	return authors, count, nil
}

// RenderSubscription annotates an author with their recipes (optionally
// capped at recipesLimit) and the total recipe count. The is_subscribed flag
// is computed generically even though it is trivially true in the
// subscriptions listing.
func (s *FollowService) RenderSubscription(ctx context.Context, viewerID uint, author *models.User, recipesLimit int) (*types.SubscriptionResponse, error) {
	subscribed, err := s.IsSubscribed(ctx, viewerID, author.ID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", author.ID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).
		Where("author_id = ?", author.ID).
		Order("id DESC")
	if recipesLimit > 0 {
		query = query.Limit(recipesLimit)
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	resp := types.SubscriptionResponse{
		UserResponse: RenderUser(author, subscribed),
		Recipes:      make([]types.RecipeShortResponse, 0, len(recipes)),
		RecipesCount: total,
	}
	for i := range recipes {
		resp.Recipes = append(resp.Recipes, RenderRecipeShort(&recipes[i]))
	}
	return &resp, nil
}
