// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"demoapp/internal/domain/entity"
)

// --- Input DTOs ---

// CreateUserInput defines the data required to create a new user record.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	FullName *string
	IsActive *bool
}

// ListUsersInput defines the filter and pagination window for listing users.
type ListUsersInput struct {
	IsActive *bool
	Skip     int
	Limit    int
}

// UserUsecase defines the interface for user-record business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	ListUsers(ctx context.Context, input ListUsersInput) ([]*entity.User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
	ActivateUser(ctx context.Context, id string) (*entity.User, error)
	DeactivateUser(ctx context.Context, id string) (*entity.User, error)
}
