package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Entity errors
var (
	ErrCampusNotFound           = errors.New("campus not found")
	ErrCampusNotUpdated         = errors.New("campus not updated")
	ErrFeeTemplateNotFound      = errors.New("fee template not found")
	ErrFeeTemplateNotUpdated    = errors.New("fee template not updated")
	ErrFeeNotFound              = errors.New("fee not found")
	ErrFeeNotUpdated            = errors.New("fee record not updated")
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrSyllabusNotFound         = errors.New("syllabus not found")
	ErrSyllabusNotUpdated       = errors.New("syllabus not updated")
	ErrStudentRecordNotFound    = errors.New("student record not found")
	ErrStudentRecordNotUpdated  = errors.New("student record not updated")
	ErrLeavePolicyNotFound      = errors.New("leave policy not found")
	ErrLeavePolicyNotUpdated    = errors.New("leave policy not updated")
	ErrFeedControlNotFound      = errors.New("parent feed control not found")
	ErrChatPreferenceNotFound   = errors.New("chat preference not found")
	ErrDeviceNotFound           = errors.New("device not found")
	ErrQuizSessionNotFound      = errors.New("quiz session not found")
	ErrQuizSessionNotUpdated    = errors.New("quiz session not updated")
	ErrInvalidSessionTransition = errors.New("invalid quiz session transition")
	ErrAppBuildNotFound         = errors.New("app build not found")
)

// External collaborator errors
var (
	ErrExternalService = errors.New("external service request failed")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewBadRequestError creates a bad-request error with a message
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}
