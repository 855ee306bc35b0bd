package types

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Password  string `json:"password" binding:"required,min=6,max=150"`
}

// LoginRequest represents the request body for token login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RecipeIngredientRequest is one (ingredient id, amount) entry of a recipe payload
type RecipeIngredientRequest struct {
	ID     uint `json:"id" binding:"required"`
	Amount uint `json:"amount" binding:"required,min=1"`
}

// RecipeRequest is the flat write shape for creating or fully replacing a
// recipe. Tags and ingredients reference existing rows by id; the image is a
// base64 data URI.
type RecipeRequest struct {
	Name        string                    `json:"name" binding:"required,max=200"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime uint                      `json:"cooking_time" binding:"required,min=1"`
	Image       string                    `json:"image"`
	Tags        []uint                    `json:"tags" binding:"required,min=1"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
}
