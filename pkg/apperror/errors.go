package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrMemberNotFound           = errors.New("member not found")
	ErrTeamNotFound             = errors.New("team not found")
	ErrEmailAlreadyExists       = errors.New("email already exists")
	ErrOAuthAlreadyExists       = errors.New("oauth identity already registered")
	ErrInvalidProvider          = errors.New("invalid oauth provider")
	ErrInvalidToken             = errors.New("invalid token")
	ErrInvalidFileExtension     = errors.New("invalid file extension")
	ErrUnsupportedFileExtension = errors.New("unsupported file extension")
	ErrRequestCountExceeded     = errors.New("request count exceeded")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrBadRequest               = errors.New("bad request")
	ErrInternal                 = errors.New("internal server error")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	if errors.Is(err, ErrMemberNotFound) || errors.Is(err, ErrTeamNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmailAlreadyExists) || errors.Is(err, ErrOAuthAlreadyExists) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrInvalidProvider) ||
		errors.Is(err, ErrInvalidFileExtension) ||
		errors.Is(err, ErrUnsupportedFileExtension) ||
		errors.Is(err, ErrRequestCountExceeded) ||
		errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
