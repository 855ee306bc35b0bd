package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram-project/backend/internal/testhelpers"
	"github.com/foodgram-project/backend/internal/types"
)

func TestListTagsEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	testhelpers.CreateTestTag(t, env.db, "Breakfast", "breakfast")
	testhelpers.CreateTestTag(t, env.db, "Dinner", "dinner")

	w := env.request(t, http.MethodGet, "/api/tags", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []types.TagResponse
	decodeJSON(t, w, &resp)
	require.Len(t, resp, 2)
	assert.Equal(t, "breakfast", resp[0].Slug)
}

func TestGetTagEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	tag := testhelpers.CreateTestTag(t, env.db, "Breakfast", "breakfast")

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/tags/%d", tag.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.TagResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, "Breakfast", resp.Name)

	w = env.request(t, http.MethodGet, "/api/tags/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/api/tags/notanumber", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchIngredientsEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	testhelpers.CreateTestIngredient(t, env.db, "milk", "ml")
	testhelpers.CreateTestIngredient(t, env.db, "vermilion oil", "ml")
	testhelpers.CreateTestIngredient(t, env.db, "salt", "g")

	w := env.request(t, http.MethodGet, "/api/ingredients?name=mil", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []types.IngredientResponse
	decodeJSON(t, w, &resp)
	require.Len(t, resp, 2)
	assert.Equal(t, "milk", resp[0].Name)
	assert.Equal(t, "vermilion oil", resp[1].Name)
}

func TestGetIngredientEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	ingredient := testhelpers.CreateTestIngredient(t, env.db, "salt", "g")

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/ingredients/%d", ingredient.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.IngredientResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, "salt", resp.Name)
	assert.Equal(t, "g", resp.MeasurementUnit)

	w = env.request(t, http.MethodGet, "/api/ingredients/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
