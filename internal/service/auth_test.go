package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterParams{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Carla",
		LastName:  "Cook",
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "cook", claims.Username)

	loginToken, err := svc.Login(ctx, "cook@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)

	_, err = svc.Login(ctx, "cook@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterParams{
		Email: "cook@example.com", Username: "cook", Password: "pass1234",
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterParams{
		Email: "cook@example.com", Username: "othercook", Password: "pass1234",
	})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "email", valErr.Field)

	_, _, err = svc.Register(ctx, RegisterParams{
		Email: "other@example.com", Username: "cook", Password: "pass1234",
	})
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "username", valErr.Field)
}

func TestRegisterInvalidUsername(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	for _, username := range []string{"has space", "semi;colon", "sla/sh", ""} {
		_, _, err := svc.Register(context.Background(), RegisterParams{
			Email: "x@example.com", Username: username, Password: "pass1234",
		})
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr, "username %q", username)
		assert.Equal(t, "username", valErr.Field)
	}
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, token, err := NewAuthService(db, "secret-a").Register(ctx, RegisterParams{
		Email: "cook@example.com", Username: "cook", Password: "pass1234",
	})
	require.NoError(t, err)

	_, err = NewAuthService(db, "secret-b").ValidateToken(token)
	assert.Error(t, err)
}
