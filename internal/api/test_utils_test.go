package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodgram-project/backend/internal/service"
	"github.com/foodgram-project/backend/internal/testhelpers"
)

// testEnv bundles the router with the database and services the tests poke
// at directly.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *service.AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDatabase(t)

	authService := service.NewAuthService(db, "test-secret")
	images := service.NewImageService(nil, t.TempDir(), "/media/")

	router := gin.New()
	router.Use(gin.Recovery())

	root := router.Group("/api")
	NewAuthHandler(authService).RegisterRoutes(root)
	NewUserHandler(authService, service.NewUserService(db), service.NewFollowService(db)).RegisterRoutes(root)
	NewTagHandler(service.NewTagService(db)).RegisterRoutes(root)
	NewIngredientHandler(service.NewIngredientService(db)).RegisterRoutes(root)
	NewRecipeHandler(
		authService,
		service.NewRecipeService(db),
		service.NewFavoriteService(db),
		service.NewCartService(db),
		images,
	).RegisterRoutes(root)

	return &testEnv{
		router: router,
		db:     db,
		auth:   authService,
	}
}

// registerUser creates an account through the API and returns its id and token.
func (e *testEnv) registerUser(t *testing.T, email, username string) (uint, string) {
	w := e.request(t, http.MethodPost, "/api/users", gin.H{
		"email":      email,
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "strongpassword",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("failed to register %s: status %d body %s", email, w.Code, w.Body.String())
	}

	var resp struct {
		ID        uint   `json:"id"`
		AuthToken string `json:"auth_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode register response: %v", err)
	}
	return resp.ID, resp.AuthToken
}

// request performs an HTTP request against the test router. An empty token
// leaves the Authorization header unset.
func (e *testEnv) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %s: %v", w.Body.String(), err)
	}
}
