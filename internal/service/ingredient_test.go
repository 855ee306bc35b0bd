package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram-project/backend/internal/service"
	"github.com/foodgram-project/backend/internal/testhelpers"
)

func TestIngredientSearchRanking(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewIngredientService(db)
	ctx := context.Background()

	testhelpers.CreateTestIngredient(t, db, "vermilion oil", "ml")
	testhelpers.CreateTestIngredient(t, db, "milk", "ml")
	testhelpers.CreateTestIngredient(t, db, "flour", "g")

	results, err := svc.Search(ctx, "mil")
	require.NoError(t, err)

	// Prefix matches come before substring-only matches.
	require.Len(t, results, 2)
	assert.Equal(t, "milk", results[0].Name)
	assert.Equal(t, "vermilion oil", results[1].Name)
}

func TestIngredientSearchCaseInsensitive(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewIngredientService(db)
	ctx := context.Background()

	testhelpers.CreateTestIngredient(t, db, "Milk", "ml")

	results, err := svc.Search(ctx, "mIL")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Milk", results[0].Name)
}

func TestIngredientSearchEmptyQuery(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewIngredientService(db)
	ctx := context.Background()

	testhelpers.CreateTestIngredient(t, db, "salt", "g")
	testhelpers.CreateTestIngredient(t, db, "flour", "g")

	results, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestIngredientGet(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewIngredientService(db)
	ctx := context.Background()

	salt := testhelpers.CreateTestIngredient(t, db, "salt", "g")

	got, err := svc.Get(ctx, salt.ID)
	require.NoError(t, err)
	assert.Equal(t, "salt", got.Name)

	_, err = svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, service.ErrIngredientNotFound)
}
