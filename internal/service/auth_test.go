package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram-project/backend/internal/service"
	"github.com/foodgram-project/backend/internal/testhelpers"
	"github.com/foodgram-project/backend/internal/types"
)

func TestRegister(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret")

	user, token, err := authSvc.Register(context.Background(), &types.RegisterRequest{
		Email:     "vasya@example.com",
		Username:  "vasya",
		FirstName: "Vasya",
		LastName:  "Pupkin",
		Password:  "strongpassword",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "strongpassword", user.PasswordHash)

	claims, err := authSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "vasya", claims.Username)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret")

	_, _, err := authSvc.Register(context.Background(), &types.RegisterRequest{
		Email:    "vasya@example.com",
		Username: "vasya",
		Password: "strongpassword",
	})
	require.NoError(t, err)

	_, _, err = authSvc.Register(context.Background(), &types.RegisterRequest{
		Email:    "vasya@example.com",
		Username: "othername",
		Password: "strongpassword",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	_, _, err = authSvc.Register(context.Background(), &types.RegisterRequest{
		Email:    "other@example.com",
		Username: "vasya",
		Password: "strongpassword",
	})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret")
	user := testhelpers.CreateTestUser(t, db, "vasya@example.com", "vasya", "strongpassword")

	token, err := authSvc.Login(context.Background(), "vasya@example.com", "strongpassword")
	require.NoError(t, err)

	claims, err := authSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret")
	testhelpers.CreateTestUser(t, db, "vasya@example.com", "vasya", "strongpassword")

	_, err := authSvc.Login(context.Background(), "vasya@example.com", "wrongpassword")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret")

	_, err := authSvc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginBlockedUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret")
	user := testhelpers.CreateTestUser(t, db, "vasya@example.com", "vasya", "strongpassword")

	require.NoError(t, db.Model(user).Update("is_blocked", true).Error)

	_, err := authSvc.Login(context.Background(), "vasya@example.com", "strongpassword")
	assert.ErrorIs(t, err, service.ErrUserBlocked)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret")

	_, err := authSvc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	authSvc := service.NewAuthService(db, "test-secret")
	other := service.NewAuthService(db, "other-secret")

	_, token, err := authSvc.Register(context.Background(), &types.RegisterRequest{
		Email:    "vasya@example.com",
		Username: "vasya",
		Password: "strongpassword",
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
