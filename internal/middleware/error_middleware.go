package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

func messageOr(err error, fallback string) string {
	if msg, ok := apperrors.MessageOf(err); ok {
		return msg
	}
	return fallback
}

// HandleAPIError maps service errors to the JSON error envelope
func HandleAPIError(c *gin.Context, err error) {
	var (
		status int
		detail *dto.ErrorDetail
	)

	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status = http.StatusNotFound
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, messageOr(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrBadRequest):
		status = http.StatusBadRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, messageOr(err, "Bad request"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		status = http.StatusBadRequest
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOr(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrExternalService):
		status = http.StatusBadGateway
		detail = dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, messageOr(err, "External service error"))
		logger.Error().Err(err).
			Fields(apperrors.DetailsOf(err)).
			Str("request_id", GetRequestID(c)).
			Msg("Upstream service failed")
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		detail = dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Request timed out")
		logger.Warn().Err(err).Str("request_id", GetRequestID(c)).Msg("Request deadline exceeded")
	default:
		status = http.StatusInternalServerError
		detail = dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
		logger.Error().Err(err).
			Str("request_id", GetRequestID(c)).
			Str("path", c.FullPath()).
			Msg("Unhandled error")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// RespondValidationError writes a 400 built from a binding or validator error
func RespondValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
