package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
	"github.com/foodgram-project/backend/internal/types"
)

// UserService handles user reads.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns a page of users plus the unpaginated total.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := s.db.WithContext(ctx).Order("id").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

// RenderUsers builds the public shape for a batch of users with
// is_subscribed computed relative to the viewer in one query.
func (s *UserService) RenderUsers(ctx context.Context, users []models.User, viewerID *uint) ([]types.UserResponse, error) {
	subscribed := map[uint]bool{}
	if viewerID != nil && len(users) > 0 {
		ids := make([]uint, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		var followed []uint
		if err := s.db.WithContext(ctx).Model(&models.Follow{}).
			Where("user_id = ? AND author_id IN ?", *viewerID, ids).
			Pluck("author_id", &followed).Error; err != nil {
			return nil, err
		}
		for _, id := range followed {
			subscribed[id] = true
		}
	}

	out := make([]types.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, RenderUser(&users[i], subscribed[users[i].ID]))
	}
	return out, nil
}
