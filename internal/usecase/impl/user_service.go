// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "demoapp/internal/delivery/context"
	"demoapp/internal/domain/entity"
	domainerrors "demoapp/internal/domain/errors"
	"demoapp/internal/domain/repository"
	"demoapp/internal/domain/service"
	"demoapp/internal/usecase"
	"demoapp/internal/validation"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser validates the input formats, then relies on the store's atomic
// check-and-insert for the uniqueness of both username and email.
func (srv *userService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	if ok, msg := validation.Username(input.Username); !ok {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(msg)
	}
	if ok, msg := validation.Email(input.Email); !ok {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(msg)
	}
	if ok, msg := validation.Password(input.Password); !ok {
		return nil, domainerrors.ErrValidationFailed.WrapMessage(msg)
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           newID("user_"),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, domainerrors.ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, domainerrors.ErrEmailTaken
		default:
			return nil, errors.Wrap(err, "failed to create user")
		}
	}

	srv.log(ctx).Info("User created", slog.String("user_id", user.ID), slog.String("username", user.Username))

	return user, nil
}

// GetUser retrieves a user by ID.
func (srv *userService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// GetUserByUsername retrieves a user by username.
func (srv *userService) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (srv *userService) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return user, nil
}

// ListUsers returns a pagination window over the optionally filtered table.
func (srv *userService) ListUsers(ctx context.Context, input usecase.ListUsersInput) ([]*entity.User, error) {
	if input.Skip < 0 || input.Limit < 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("skip and limit must not be negative")
	}

	users, err := srv.userRepo.List(ctx, repository.ListUsersFilter{
		IsActive: input.IsActive,
		Skip:     input.Skip,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// UpdateUser applies a partial update. A changed email is re-validated for
// format and re-checked for uniqueness against other records.
func (srv *userService) UpdateUser(ctx context.Context, id string, input usecase.UpdateUserInput) (*entity.User, error) {
	if input.Email != nil {
		if ok, msg := validation.Email(*input.Email); !ok {
			return nil, domainerrors.ErrValidationFailed.WrapMessage(msg)
		}
	}

	user, err := srv.userRepo.Update(ctx, id, entity.UserUpdate{
		Email:    input.Email,
		FullName: input.FullName,
		IsActive: input.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, domainerrors.ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, domainerrors.ErrEmailTaken
		default:
			return nil, errors.Wrap(err, "failed to update user")
		}
	}

	return user, nil
}

// DeleteUser permanently removes the record.
func (srv *userService) DeleteUser(ctx context.Context, id string) error {
	err := srv.userRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.String("user_id", id))

	return nil
}

// ActivateUser marks the user active.
func (srv *userService) ActivateUser(ctx context.Context, id string) (*entity.User, error) {
	return srv.setActive(ctx, id, true)
}

// DeactivateUser marks the user inactive.
func (srv *userService) DeactivateUser(ctx context.Context, id string) (*entity.User, error) {
	return srv.setActive(ctx, id, false)
}

func (srv *userService) setActive(ctx context.Context, id string, active bool) (*entity.User, error) {
	user, err := srv.userRepo.Update(ctx, id, entity.UserUpdate{IsActive: &active})
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to change user active state")
	}

	return user, nil
}
