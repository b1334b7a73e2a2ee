package handler

import (
	"log/slog"
	"net/http"
	"time"

	"demoapp/internal/delivery/http/response"
	"demoapp/internal/domain/entity"
	"demoapp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for the user-record endpoints.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,username_format"`
	Email    string `json:"email" validate:"required,email_format"`
	Password string `json:"password" validate:"required,password_strength"`
	FullName string `json:"full_name"`
}

// userResponse is the wire shape of a user; the password hash never leaves
// the server.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// CreateUser handles the user creation request.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.CreateUser(c.Request().Context(), usecase.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "User created")
}

// GetUser fetches a single user by id.
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.uc.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "")
}

// ListUsers returns a pagination window over the user table.
func (h *UserHandler) ListUsers(c echo.Context) error {
	var input usecase.ListUsersInput

	binder := echo.QueryParamsBinder(c).
		Int("skip", &input.Skip).
		Int("limit", &input.Limit)
	if err := binder.BindError(); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "skip and limit must be integers")
	}
	if input.Limit == 0 {
		input.Limit = 10
	}

	if raw := c.QueryParam("is_active"); raw != "" {
		active := raw == "true"
		input.IsActive = &active
	}

	users, err := h.uc.ListUsers(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	page := make([]userResponse, 0, len(users))
	for _, user := range users {
		page = append(page, newUserResponse(user))
	}

	return response.Success(c, http.StatusOK, page, "")
}

type updateUserRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUser applies a partial update to a user record.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), c.Param("id"), usecase.UpdateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
		IsActive: req.IsActive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "User updated")
}

// DeleteUser permanently removes a user record.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.uc.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "User deleted"}, "User deleted")
}

// ActivateUser marks a user active.
func (h *UserHandler) ActivateUser(c echo.Context) error {
	user, err := h.uc.ActivateUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "User activated")
}

// DeactivateUser marks a user inactive.
func (h *UserHandler) DeactivateUser(c echo.Context) error {
	user, err := h.uc.DeactivateUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user), "User deactivated")
}
