package middleware

import (
	"github.com/go-playground/validator/v10"

	"github.com/schoolhub/backend/internal/app/models/dto"
)

// HandleValidationError turns a validator error into a client-facing
// ErrorDetail with per-field messages.
func HandleValidationError(err error) *dto.ErrorDetail {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = formatValidationError(fieldError)
	}
	return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
		WithDetails(fields)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
