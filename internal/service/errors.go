package service

import (
	"errors"
	"strings"
)

// Domain errors. Handlers map these onto HTTP statuses; raw database errors
// never reach the caller.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserBlocked        = errors.New("this account is blocked")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUsernameTaken      = errors.New("user with this username already exists")

	ErrUserNotFound       = errors.New("user not found")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrIngredientNotFound = errors.New("ingredient does not exist")
	ErrTagNotFound        = errors.New("tag does not exist")

	ErrNotRecipeAuthor = errors.New("only the author may modify this recipe")

	ErrNoTags               = errors.New("at least one tag is required")
	ErrNoIngredients        = errors.New("at least one ingredient is required")
	ErrDuplicateTags        = errors.New("tags must not repeat")
	ErrDuplicateIngredients = errors.New("ingredients must not repeat")
	ErrAmountTooSmall       = errors.New("ingredient amount must be at least 1")

	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
	ErrAlreadyInCart    = errors.New("recipe is already in the shopping cart")
	ErrNotInCart        = errors.New("recipe is not in the shopping cart")

	ErrSelfFollow       = errors.New("cannot subscribe to yourself")
	ErrAlreadyFollowing = errors.New("already subscribed to this author")
	ErrNotFollowing     = errors.New("not subscribed to this author")
)

// isUniqueViolation reports whether err is a unique-constraint violation from
// PostgreSQL or SQLite. The existence pre-checks in the services are a UX
// nicety; a concurrent duplicate insert still lands here and is translated to
// the same domain error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// registerConflictError translates a unique violation on the users table into
// the domain error for the column that fired. Both backends name the column
// in the message: PostgreSQL in the constraint name, SQLite as table.column.
func registerConflictError(err error) error {
	if !isUniqueViolation(err) {
		return err
	}
	if strings.Contains(err.Error(), "username") {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}
