package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "userapi/internal/errors"
	"userapi/internal/model"
	"userapi/internal/service"
)

const (
	msgAllFieldsRequired = "All fields are required"
	msgUserExists        = "User already exists"
	msgUserCreated       = "User created"
	msgUserNotFound      = "User not found"
	msgNotUpdated        = "Not Updated"
	msgUpdated           = "Updated successfully"
	msgWrongID           = "User not found or wrong id"
	msgDeleted           = "Deleted successsfully"
	msgNoUsersToDelete   = "No users found to delete"
	msgAllDeleted        = "All users deleted successfully"

	msgListFailed      = "An error occurred while fetching users"
	msgCreateFailed    = "An error occurred"
	msgGetFailed       = "An error occurred while fetching the user"
	msgUpdateFailed    = "An error occurred while updating the user"
	msgDeleteFailed    = "An error occurred while deleting the user"
	msgDeleteAllFailed = "An error occurred while deleting users"
)

// CreateUserResponse is returned when a user is created.
type CreateUserResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"User created"`
	NewUser *model.User `json:"newUser"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Success bool        `json:"success" example:"true"`
	User    *model.User `json:"user"`
}

// UpdateUserResponse is returned when a user is updated.
type UpdateUserResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"Updated successfully"`
	User    *model.User `json:"user"`
}

// UserHandler bundles the user HTTP handlers.
type UserHandler struct {
	svc service.UserService
	log *zap.Logger
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// ListUsers godoc
// @Summary Retrieve all users from the database
// @Description Fetch all users, including their id, name, email, designation, and timestamps.
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 404 {object} errors.ListErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /getAll [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrUsersNotFound) {
			return c.JSON(http.StatusNotFound, apperrors.ListErrorResponse{Error: err.Error()})
		}
		return h.storeFailure(c, "list", msgListFailed, err)
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary Create a new user
// @Description Adds a user. Name, email and designation are required. An existing email is reported as success with "User already exists".
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.UserInput true "User payload"
// @Success 201 {object} CreateUserResponse
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /addUser [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var in service.UserInput
	if err := c.Bind(&in); err != nil {
		in = service.UserInput{}
	}

	user, err := h.svc.CreateUser(c.Request().Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, apperrors.Failure(msgAllFieldsRequired))
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			return c.JSON(http.StatusOK, apperrors.Success(msgUserExists))
		default:
			return h.storeFailure(c, "create", msgCreateFailed, err)
		}
	}
	return c.JSON(http.StatusCreated, CreateUserResponse{
		Success: true,
		Message: msgUserCreated,
		NewUser: user,
	})
}

// GetUser godoc
// @Summary Get a user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /single/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, apperrors.Failure(msgUserNotFound))
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, apperrors.Failure(msgUserNotFound))
		}
		return h.storeFailure(c, "get", msgGetFailed, err)
	}
	return c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}

// UpdateUser godoc
// @Summary Update a user by ID
// @Description Overwrites name, email and designation of an existing user.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body service.UserInput true "User payload"
// @Success 201 {object} UpdateUserResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /update/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, apperrors.Failure(msgNotUpdated))
	}

	var in service.UserInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.Failure(msgNotUpdated))
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, in)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, apperrors.Failure(msgNotUpdated))
		}
		return h.storeFailure(c, "update", msgUpdateFailed, err)
	}
	return c.JSON(http.StatusCreated, UpdateUserResponse{
		Success: true,
		Message: msgUpdated,
		User:    user,
	})
}

// DeleteUser godoc
// @Summary Delete a user by ID
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /delete/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, apperrors.Failure(msgWrongID))
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, apperrors.Failure(msgWrongID))
		}
		return h.storeFailure(c, "delete", msgDeleteFailed, err)
	}
	return c.JSON(http.StatusOK, apperrors.Success(msgDeleted))
}

// DeleteAllUsers godoc
// @Summary Delete all users from the database
// @Tags users
// @Produce json
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /deleteAll [delete]
func (h *UserHandler) DeleteAllUsers(c echo.Context) error {
	if err := h.svc.DeleteAllUsers(c.Request().Context()); err != nil {
		if errors.Is(err, apperrors.ErrUsersNotFound) {
			return c.JSON(http.StatusBadRequest, apperrors.Failure(msgNoUsersToDelete))
		}
		return h.storeFailure(c, "deleteAll", msgDeleteAllFailed, err)
	}
	return c.JSON(http.StatusOK, apperrors.Success(msgAllDeleted))
}

func (h *UserHandler) storeFailure(c echo.Context, op, message string, err error) error {
	h.log.Error("store failure",
		zap.String("op", op),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, apperrors.StoreFailure(message, err))
}

// parseID reads the :id path parameter. Zero and non-numeric ids never match a record.
func parseID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
