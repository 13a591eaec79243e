package apperrors

import "fmt"

// AppError carries an HTTP-ish status code alongside a wrapped cause so the
// handler layer can map repository failures without string matching.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches errors.Is(err, ErrValidation).
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
