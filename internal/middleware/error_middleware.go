package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolhub/backend/internal/app/models/dto"
	"github.com/schoolhub/backend/internal/pkg/apperrors"
	"github.com/schoolhub/backend/internal/pkg/logger"
)

// notFoundErrors map to 404. The sentinel text is the client message.
var notFoundErrors = []error{
	apperrors.ErrResourceNotFound,
	apperrors.ErrCampusNotFound,
	apperrors.ErrFeeTemplateNotFound,
	apperrors.ErrFeeNotFound,
	apperrors.ErrPaymentNotFound,
	apperrors.ErrSyllabusNotFound,
	apperrors.ErrStudentRecordNotFound,
	apperrors.ErrLeavePolicyNotFound,
	apperrors.ErrFeedControlNotFound,
	apperrors.ErrChatPreferenceNotFound,
	apperrors.ErrDeviceNotFound,
	apperrors.ErrQuizSessionNotFound,
	apperrors.ErrAppBuildNotFound,
	apperrors.ErrCampusNotUpdated,
	apperrors.ErrFeeTemplateNotUpdated,
	apperrors.ErrFeeNotUpdated,
	apperrors.ErrSyllabusNotUpdated,
	apperrors.ErrStudentRecordNotUpdated,
	apperrors.ErrLeavePolicyNotUpdated,
	apperrors.ErrQuizSessionNotUpdated,
}

func matchesAny(err error, sentinels []error) bool {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// HandleAPIError maps service errors to HTTP statuses and the canonical
// error envelope. Unknown errors become a generic 500; their details are
// logged, never sent to the client.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case matchesAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))
	case errors.Is(err, apperrors.ErrInvalidSessionTransition):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error())))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error())))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, err.Error())))
	case errors.Is(err, apperrors.ErrExternalService):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("External service failure")
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "External service request failed")))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
