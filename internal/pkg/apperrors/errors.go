package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrBadRequest       = errors.New("bad request")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Upstream errors
	ErrExternalService = errors.New("external service error")
)

// Catalog messages returned to clients
const (
	MsgCategoryNotFound     = "Category not found"
	MsgSubCategoryNotFound  = "Sub category not found"
	MsgCourseNotFound       = "Course not found"
	MsgMyCourseNotFound     = "my course not found"
	MsgNameTaken            = "Name already taken"
	MsgCategoryIDNotFound   = "Cannot find categoryId"
	MsgSubCategoryIDMissing = "Cannot find subCategoryId"
	MsgCategoryHasChildren  = "cannot delete because of exists sub categories"
	MsgSubCategoryInUse     = "cannot delete because of exists courses"
	MsgAlreadyEnrolled      = "Already exists"
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewExternalServiceError wraps a failure of an upstream dependency.
// The cause is kept in Details for logging and never sent to clients.
func NewExternalServiceError(message string, cause error) error {
	e := &CustomError{
		Err:     ErrExternalService,
		Message: message,
	}
	if cause != nil {
		e.Details = map[string]interface{}{"cause": cause.Error()}
	}
	return e
}

// MessageOf returns the client-facing message carried by a CustomError in err's chain.
func MessageOf(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}

// DetailsOf returns the logging context carried by a CustomError in err's chain.
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}
