package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/models"
	"github.com/foodgram-project/backend/internal/types"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeFilter narrows a recipe listing. Favorited and InCart are scoped to
// ViewerID and ignored for anonymous callers.
type RecipeFilter struct {
	AuthorID  *uint
	TagSlugs  []string
	Favorited bool
	InCart    bool
	ViewerID  *uint
	Limit     int
	Offset    int
}

// Get retrieves a recipe by ID with its associations loaded.
func (s *RecipeService) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Author").
		Preload("IngredientAmounts.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// List returns a page of recipes, newest first, plus the unpaginated total.
func (s *RecipeService) List(ctx context.Context, f RecipeFilter) ([]models.Recipe, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if f.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		// IN over a subquery instead of a join so recipes with several
		// matching tags are not counted twice.
		query = query.Where(
			"recipes.id IN (?)",
			s.db.Model(&models.Tag{}).
				Select("recipe_tags.recipe_id").
				Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
				Where("tags.slug IN ?", f.TagSlugs),
		)
	}
	if f.ViewerID != nil {
		if f.Favorited {
			query = query.Where(
				"recipes.id IN (?)",
				s.db.Model(&models.Favorite{}).Select("recipe_id").Where("user_id = ?", *f.ViewerID),
			)
		}
		if f.InCart {
			query = query.Where(
				"recipes.id IN (?)",
				s.db.Model(&models.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", *f.ViewerID),
			)
		}
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := query.
		Preload("Tags").
		Preload("Author").
		Preload("IngredientAmounts.Ingredient").
		Order("recipes.id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, count, nil
}

// Create inserts the recipe row, its ingredient amounts and tag links inside
// one transaction.
func (s *RecipeService) Create(ctx context.Context, authorID uint, imageURL string, req *types.RecipeRequest) (*models.Recipe, error) {
	if err := validateRecipeRequest(req); err != nil {
		return nil, err
	}

	var recipeID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, req.Tags)
		if err != nil {
			return err
		}
		if err := checkIngredientsExist(tx, req.Ingredients); err != nil {
			return err
		}

		recipe := models.Recipe{
			Name:        req.Name,
			Text:        req.Text,
			Image:       imageURL,
			CookingTime: req.CookingTime,
			AuthorID:    &authorID,
			Tags:        tags,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		if err := tx.Create(ingredientAmounts(recipe.ID, req.Ingredients)).Error; err != nil {
			return err
		}

		recipeID = recipe.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipeID)
}

// Update fully replaces a recipe. The old ingredient amounts and tag links
// are deleted and the payload's sets re-inserted in the same transaction, so
// a concurrent reader never sees a recipe with no ingredients or tags.
func (s *RecipeService) Update(ctx context.Context, id, actorID uint, imageURL string, req *types.RecipeRequest) (*models.Recipe, error) {
	if err := validateRecipeRequest(req); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if !canModify(actorID, &recipe) {
			return ErrNotRecipeAuthor
		}

		tags, err := resolveTags(tx, req.Tags)
		if err != nil {
			return err
		}
		if err := checkIngredientsExist(tx, req.Ingredients); err != nil {
			return err
		}

		recipe.Name = req.Name
		recipe.Text = req.Text
		recipe.CookingTime = req.CookingTime
		if imageURL != "" {
			recipe.Image = imageURL
		}
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientAmount{}).Error; err != nil {
			return err
		}
		if err := tx.Create(ingredientAmounts(recipe.ID, req.Ingredients)).Error; err != nil {
			return err
		}

		return tx.Model(&recipe).Association("Tags").Replace(&tags)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes a recipe. Only the author may delete it.
func (s *RecipeService) Delete(ctx context.Context, id, actorID uint) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if !canModify(actorID, &recipe) {
		return ErrNotRecipeAuthor
	}
	return s.db.WithContext(ctx).Select("Tags", "IngredientAmounts").Delete(&recipe).Error
}

// canModify is the ownership predicate: only the recipe's author may change
// it. Recipes whose author was deleted belong to nobody.
func canModify(actorID uint, recipe *models.Recipe) bool {
	return recipe.AuthorID != nil && *recipe.AuthorID == actorID
}

func validateRecipeRequest(req *types.RecipeRequest) error {
	// The binding tags enforce this over HTTP; direct callers get the same
	// rule here.
	if len(req.Tags) == 0 {
		return ErrNoTags
	}
	if len(req.Ingredients) == 0 {
		return ErrNoIngredients
	}

	seenTags := make(map[uint]struct{}, len(req.Tags))
	for _, id := range req.Tags {
		if _, ok := seenTags[id]; ok {
			return ErrDuplicateTags
		}
		seenTags[id] = struct{}{}
	}

	seenIngredients := make(map[uint]struct{}, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if _, ok := seenIngredients[ing.ID]; ok {
			return ErrDuplicateIngredients
		}
		seenIngredients[ing.ID] = struct{}{}
		if ing.Amount < 1 {
			return ErrAmountTooSmall
		}
	}
	return nil
}

func resolveTags(tx *gorm.DB, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

func checkIngredientsExist(tx *gorm.DB, entries []types.RecipeIngredientRequest) error {
	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrIngredientNotFound
	}
	return nil
}

func ingredientAmounts(recipeID uint, entries []types.RecipeIngredientRequest) []models.IngredientAmount {
	amounts := make([]models.IngredientAmount, 0, len(entries))
	for _, e := range entries {
		amounts = append(amounts, models.IngredientAmount{
			RecipeID:     recipeID,
			IngredientID: e.ID,
			Amount:       e.Amount,
		})
	}
	return amounts
}
