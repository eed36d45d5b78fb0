package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "smartclinic-backend/internal/common/errors"
	"smartclinic-backend/internal/common/logger"
	"smartclinic-backend/internal/common/middleware"
)

// All API responses share the {success, ...payload | error} envelope
// consumed by the mini web application.

func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func Error(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Wrap(err, apperrors.ErrCodeInternal, "Internal server error")
	}

	logEvent := logger.Error()
	switch {
	case appErr.IsNotFound(), appErr.IsValidation():
		logEvent = logger.Info()
	case appErr.IsUnauthorized():
		logEvent = logger.Warn()
	}
	logEvent.
		Str("request_id", middleware.GetRequestID(c)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("error_code", string(appErr.Code)).
		Err(appErr).
		Msg("Request failed")

	c.JSON(statusCode(appErr), gin.H{"success": false, "error": appErr.Message})
}

func statusCode(appErr *apperrors.AppError) int {
	switch {
	case appErr.IsValidation():
		return http.StatusBadRequest
	case appErr.IsNotFound():
		return http.StatusNotFound
	case appErr.Code == apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.Code == apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case appErr.Code == apperrors.ErrCodeConflict:
		return http.StatusConflict
	case appErr.Code == apperrors.ErrCodePromoExhausted,
		appErr.Code == apperrors.ErrCodePromoInactive,
		appErr.Code == apperrors.ErrCodePromoExpired:
		return http.StatusUnprocessableEntity
	case appErr.Code == apperrors.ErrCodeCacheError:
		return http.StatusServiceUnavailable
	case appErr.Code == apperrors.ErrCodeTelegramAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
