package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodgram-project/backend/internal/models"
)

// IngredientService serves the ingredient reference data.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// Get retrieves an ingredient by ID.
func (s *IngredientService) Get(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// Search returns ingredients matching name, prefix matches ranked before
// substring-only matches. Secondary ordering by (name, id) keeps the result
// stable between calls.
func (s *IngredientService) Search(ctx context.Context, name string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{})

	if name != "" {
		lowered := strings.ToLower(name)
		query = query.
			Where("LOWER(name) LIKE ?", "%"+lowered+"%").
			Clauses(clause.OrderBy{Expression: clause.Expr{
				SQL:                "CASE WHEN LOWER(name) LIKE ? THEN 0 ELSE 1 END, name, id",
				Vars:               []interface{}{lowered + "%"},
				WithoutParentheses: true,
			}})
	} else {
		query = query.Order("name, id")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
