package types

// UserResponse is the public user shape, with is_subscribed computed
// relative to the requesting user.
type UserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// TagResponse mirrors the tag reference data.
type TagResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// IngredientResponse mirrors the ingredient reference data.
type IngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// RecipeIngredientResponse is an ingredient as it appears inside a recipe,
// denormalized with its amount.
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          uint   `json:"amount"`
}

// RecipeResponse is the nested read shape of a recipe.
type RecipeResponse struct {
	ID                uint                       `json:"id"`
	Name              string                     `json:"name"`
	Tags              []TagResponse              `json:"tags"`
	Author            UserResponse               `json:"author"`
	Ingredients       []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited       bool                       `json:"is_favorited"`
	IsInShoppingCart  bool                       `json:"is_in_shopping_cart"`
	Image             string                     `json:"image"`
	Text              string                     `json:"text"`
	CookingTime       uint                       `json:"cooking_time"`
}

// RecipeShortResponse is the compact recipe shape used by the favorite and
// shopping-cart toggles and inside subscription listings.
type RecipeShortResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime uint   `json:"cooking_time"`
}

// SubscriptionResponse is a followed author annotated with their recipes.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// Page is the paginated list envelope.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}
