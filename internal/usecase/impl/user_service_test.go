package impl

import (
	"context"
	"testing"

	domainerrors "demoapp/internal/domain/errors"
	"demoapp/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Str0ng!Pass",
		FullName: "Alice Example",
	}
}

func TestUserService_CreateUser_Success(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, validCreateInput())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.True(t, user.IsActive)
	// The plaintext never reaches the store.
	assert.NotEqual(t, "Str0ng!Pass", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestUserService_CreateUser_ValidationFailures(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*usecase.CreateUserInput)
	}{
		{"bad username", func(in *usecase.CreateUserInput) { in.Username = "1abc" }},
		{"bad email", func(in *usecase.CreateUserInput) { in.Email = "not-an-email" }},
		{"weak password", func(in *usecase.CreateUserInput) { in.Password = "short" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(&input)

			_, err := service.CreateUser(ctx, input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestUserService_CreateUser_Conflicts(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	_, err := service.CreateUser(ctx, validCreateInput())
	require.NoError(t, err)

	dupUsername := validCreateInput()
	dupUsername.Email = "other@example.com"
	_, err = service.CreateUser(ctx, dupUsername)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)

	dupEmail := validCreateInput()
	dupEmail.Username = "bob"
	_, err = service.CreateUser(ctx, dupEmail)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	service := newTestUserService()

	_, err := service.GetUser(context.Background(), "user_missing")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_UpdateUser(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, validCreateInput())
	require.NoError(t, err)

	newName := "Alice Updated"
	updated, err := service.UpdateUser(ctx, user.ID, usecase.UpdateUserInput{FullName: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.FullName)
	assert.Equal(t, user.Email, updated.Email)

	badEmail := "nope"
	_, err = service.UpdateUser(ctx, user.ID, usecase.UpdateUserInput{Email: &badEmail})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_UpdateUser_EmailConflict(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	_, err := service.CreateUser(ctx, validCreateInput())
	require.NoError(t, err)

	second := validCreateInput()
	second.Username = "bob"
	second.Email = "bob@example.com"
	bob, err := service.CreateUser(ctx, second)
	require.NoError(t, err)

	taken := "alice@example.com"
	_, err = service.UpdateUser(ctx, bob.ID, usecase.UpdateUserInput{Email: &taken})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserService_ActivateDeactivate(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, validCreateInput())
	require.NoError(t, err)

	deactivated, err := service.DeactivateUser(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	activated, err := service.ActivateUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	_, err = service.ActivateUser(ctx, "user_missing")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	user, err := service.CreateUser(ctx, validCreateInput())
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(ctx, user.ID))

	_, err = service.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	err = service.DeleteUser(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	service := newTestUserService()
	ctx := context.Background()

	usernames := []string{"alice", "bob", "carol", "dave", "erin"}
	for i, name := range usernames {
		input := usecase.CreateUserInput{
			Username: name,
			Email:    name + "@example.com",
			Password: "Str0ng!Pass",
		}
		user, err := service.CreateUser(ctx, input)
		require.NoError(t, err)
		if i == 4 {
			_, err = service.DeactivateUser(ctx, user.ID)
			require.NoError(t, err)
		}
	}

	page, err := service.ListUsers(ctx, usecase.ListUsersInput{Skip: 0, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "alice", page[0].Username)
	assert.Equal(t, "bob", page[1].Username)

	active := true
	filtered, err := service.ListUsers(ctx, usecase.ListUsersInput{IsActive: &active, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, filtered, 4)

	_, err = service.ListUsers(ctx, usecase.ListUsersInput{Skip: -1})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
