package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTaskNotFound is returned when a task does not exist or belongs to
	// another user. The two causes are deliberately indistinguishable.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNoTasks is returned when the caller owns zero tasks.
	ErrNoTasks = errors.New("no tasks found")
	// ErrUserNotFound is returned when a user record is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrTitleRequired is returned when a task draft lacks a title.
	ErrTitleRequired = errors.New("title is required")
	// ErrPriorityRequired is returned when a task draft lacks a priority.
	ErrPriorityRequired = errors.New("priority is required")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors surface
// generically; their detail belongs in server logs only.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrTaskNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case ErrNoTasks:
		return NewHTTPError(http.StatusNotFound, err.Error(), "NO_TASKS")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrTitleRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TITLE_REQUIRED")
	case ErrPriorityRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PRIORITY_REQUIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
