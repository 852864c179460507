package errors

import "errors"

var (
	// ErrUserNotFound is returned when no user has the requested id.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsersNotFound is returned when the users table is empty.
	ErrUsersNotFound = errors.New("users not found")
	// ErrUserAlreadyExists is returned when a user with the same email is already stored.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrMissingFields is returned when name, email or designation is empty.
	ErrMissingFields = errors.New("all fields are required")
)

// ListErrorResponse is the body of a failed list call.
type ListErrorResponse struct {
	Error string `json:"error" example:"users not found"`
}

// MessageResponse is the envelope shared by create, update and delete outcomes.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Deleted successsfully"`
}

// ErrorResponse is returned with a 500 when the store fails.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"An error occurred"`
	Error   string `json:"error,omitempty" example:"connection refused"`
}

// Failure builds a 4xx envelope with success=false.
func Failure(message string) MessageResponse {
	return MessageResponse{Success: false, Message: message}
}

// Success builds a 2xx envelope with success=true.
func Success(message string) MessageResponse {
	return MessageResponse{Success: true, Message: message}
}

// StoreFailure wraps a store error for a 500 response.
func StoreFailure(message string, err error) ErrorResponse {
	resp := ErrorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}
