package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/admission-portal/internal/app/models/dto"
	"github.com/campusgate/admission-portal/internal/pkg/apperrors"
	"github.com/campusgate/admission-portal/internal/pkg/logger"
)

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// HandleAPIError maps domain errors onto HTTP responses. Every controller
// funnels its errors through here so the status/code mapping lives in one
// place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeAccountDisabled, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrInvalidPassword):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Current password is incorrect")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already registered")
	case errors.Is(err, apperrors.ErrDuplicateApplication):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "An application has already been submitted")
	case errors.Is(err, apperrors.ErrApplicationReviewed):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Application has already been reviewed")
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrDocumentNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, notFoundMessage(err))
	case errors.Is(err, apperrors.ErrInvalidStatus):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "Unknown application status")
	case errors.Is(err, apperrors.ErrInvalidCourse):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "Course is not offered")
	case errors.Is(err, apperrors.ErrInvalidDocumentType):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "Unknown document type")
	case errors.Is(err, apperrors.ErrFileTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, dto.ErrorCodeFileTooLarge, "File exceeds the maximum allowed size")
	case errors.Is(err, apperrors.ErrFileTypeNotAllowed):
		respondError(c, http.StatusUnsupportedMediaType, dto.ErrorCodeFileTypeInvalid, "File type is not allowed")
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrStorageFailure):
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeExternalServiceError, "File storage failed")
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		return "Application not found"
	case errors.Is(err, apperrors.ErrDocumentNotFound):
		return "Document not found"
	default:
		return "Resource not found"
	}
}

// HandleValidationError responds with 400 and per-field binding details
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

// NoRouteHandler responds to unknown paths with the standard envelope
func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Endpoint not found")
	}
}
