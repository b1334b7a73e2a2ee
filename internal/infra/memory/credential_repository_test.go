package memory

import (
	"context"
	"testing"

	"demoapp/internal/domain/entity"
	"demoapp/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialRepository_SaveAndFind(t *testing.T) {
	repo := NewCredentialRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.Credential{
		Username:     "admin",
		PasswordHash: "$2a$10$hash",
		Role:         entity.RoleAdmin,
		Email:        "admin@example.com",
	}))

	cred, err := repo.Find(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, cred.Role)

	byEmail, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", byEmail.Username)

	_, err = repo.Find(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrCredentialNotFound)

	_, err = repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, repository.ErrCredentialNotFound)
}

func TestCredentialRepository_UpdatePassword(t *testing.T) {
	repo := NewCredentialRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.Credential{
		Username:     "user1",
		PasswordHash: "old",
		Role:         entity.RoleUser,
		Email:        "user1@example.com",
	}))

	require.NoError(t, repo.UpdatePassword(ctx, "user1", "new"))

	cred, err := repo.Find(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, "new", cred.PasswordHash)

	err = repo.UpdatePassword(ctx, "ghost", "x")
	assert.ErrorIs(t, err, repository.ErrCredentialNotFound)
}
