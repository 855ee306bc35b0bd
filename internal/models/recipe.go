package models

import (
	"time"
)

// Ingredient is immutable reference data loaded by the seeder.
type Ingredient struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	Name            string `gorm:"size:250;not null;index;uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string `gorm:"size:20;not null;uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`
}

// Tag is reference data attached to recipes.
type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"size:200;not null" json:"name"`
	Color string `gorm:"size:7;not null" json:"color"`
	Slug  string `gorm:"size:200;uniqueIndex;not null" json:"slug"`
}

// Recipe is the primary content entity. AuthorID is nullable: deleting a
// user keeps their recipes with the author set to NULL.
type Recipe struct {
	ID                uint               `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	Name              string             `gorm:"size:200;not null" json:"name"`
	Text              string             `gorm:"type:text;not null" json:"text"`
	Image             string             `gorm:"size:255" json:"image"`
	CookingTime       uint               `gorm:"not null" json:"cooking_time"`
	AuthorID          *uint              `json:"author_id"`
	Author            *User              `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"-"`
	Tags              []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"-"`
	IngredientAmounts []IngredientAmount `gorm:"foreignKey:RecipeID" json:"-"`
}

// IngredientAmount binds a recipe to an ingredient with a quantity.
// Rows are owned by the recipe and replaced wholesale on every update.
type IngredientAmount struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	RecipeID     uint        `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint        `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
	Amount       uint        `gorm:"not null;check:amount >= 1" json:"amount"`
}

// Favorite is a user's bookmark of a recipe.
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

// ShoppingCart queues a recipe whose ingredients feed the shopping list.
type ShoppingCart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`
	Recipe    *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (IngredientAmount) TableName() string {
	return "ingredient_amounts"
}

func (ShoppingCart) TableName() string {
	return "shopping_carts"
}
