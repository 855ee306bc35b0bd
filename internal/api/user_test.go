package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram-project/backend/internal/types"
)

func TestRegisterEndpoint(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/users", gin.H{
		"email":      "vasya@example.com",
		"username":   "vasya",
		"first_name": "Vasya",
		"last_name":  "Pupkin",
		"password":   "strongpassword",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID        uint   `json:"id"`
		Email     string `json:"email"`
		Username  string `json:"username"`
		AuthToken string `json:"auth_token"`
	}
	decodeJSON(t, w, &resp)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "vasya@example.com", resp.Email)
	assert.NotEmpty(t, resp.AuthToken)
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "vasya@example.com", "vasya")

	w := env.request(t, http.MethodPost, "/api/users", gin.H{
		"email":    "vasya@example.com",
		"username": "othername",
		"password": "strongpassword",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMeEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	id, token := env.registerUser(t, "vasya@example.com", "vasya")

	w := env.request(t, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.UserResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "vasya", resp.Username)
}

func TestMeEndpointRequiresAuth(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	id, _ := env.registerUser(t, "vasya@example.com", "vasya")

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.UserResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, "vasya", resp.Username)
	assert.False(t, resp.IsSubscribed)

	w = env.request(t, http.MethodGet, "/api/users/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListUsersEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "first@example.com", "first")
	env.registerUser(t, "second@example.com", "second")

	w := env.request(t, http.MethodGet, "/api/users", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count   int64                `json:"count"`
		Results []types.UserResponse `json:"results"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, int64(2), resp.Count)
	assert.Len(t, resp.Results, 2)
}

func TestSubscribeEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.registerUser(t, "follower@example.com", "follower")
	authorID, _ := env.registerUser(t, "author@example.com", "author")

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", authorID), nil, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.SubscriptionResponse
	decodeJSON(t, w, &resp)
	assert.Equal(t, "author", resp.Username)
	assert.True(t, resp.IsSubscribed)

	// Duplicate subscription is a client error.
	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", authorID), nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/users/%d/subscribe", authorID), nil, token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/users/%d/subscribe", authorID), nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeSelfEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	id, token := env.registerUser(t, "vasya@example.com", "vasya")

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", id), nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionsEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	_, token := env.registerUser(t, "follower@example.com", "follower")
	authorID, authorToken := env.registerUser(t, "author@example.com", "author")

	for i := 0; i < 3; i++ {
		createTestRecipeViaAPI(t, env, authorToken, fmt.Sprintf("Recipe %d", i))
	}

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe", authorID), nil, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/users/subscriptions?recipes_limit=2", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count   int64                        `json:"count"`
		Results []types.SubscriptionResponse `json:"results"`
	}
	decodeJSON(t, w, &resp)
	assert.Equal(t, int64(1), resp.Count)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "author", resp.Results[0].Username)
	assert.Equal(t, int64(3), resp.Results[0].RecipesCount)
	assert.Len(t, resp.Results[0].Recipes, 2)
}
