package errors

import (
	"fmt"
	"time"
)

// ErrorCode classifies application errors.
type ErrorCode string

const (
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"

	ErrCodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	ErrCodeInvalidUserData ErrorCode = "INVALID_USER_DATA"

	ErrCodeContentNotFound  ErrorCode = "CONTENT_NOT_FOUND"
	ErrCodeCategoryNotFound ErrorCode = "CATEGORY_NOT_FOUND"

	ErrCodePromoNotFound  ErrorCode = "PROMO_NOT_FOUND"
	ErrCodePromoExhausted ErrorCode = "PROMO_EXHAUSTED"
	ErrCodePromoInactive  ErrorCode = "PROMO_INACTIVE"
	ErrCodePromoExpired   ErrorCode = "PROMO_EXPIRED"

	ErrCodeQuestionNotFound ErrorCode = "QUESTION_NOT_FOUND"
	ErrCodeSubscriptionOff  ErrorCode = "SUBSCRIPTION_NOT_ACTIVE"

	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrCodeCacheError    ErrorCode = "CACHE_ERROR"
	ErrCodeTelegramAPI   ErrorCode = "TELEGRAM_API_ERROR"
)

// AppError is a typed application error carried across layers.
type AppError struct {
	Code      ErrorCode         `json:"code"`
	Message   string            `json:"message"`
	Context   map[string]string `json:"context,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Cause     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) IsNotFound() bool {
	switch e.Code {
	case ErrCodeNotFound, ErrCodeUserNotFound, ErrCodeContentNotFound,
		ErrCodeCategoryNotFound, ErrCodePromoNotFound, ErrCodeQuestionNotFound:
		return true
	}
	return false
}

func (e *AppError) IsValidation() bool {
	return e.Code == ErrCodeValidation || e.Code == ErrCodeInvalidUserData || e.Code == ErrCodeBadRequest
}

func (e *AppError) IsUnauthorized() bool {
	return e.Code == ErrCodeUnauthorized || e.Code == ErrCodeForbidden
}

func (e *AppError) IsInternal() bool {
	return e.Code == ErrCodeInternal || e.Code == ErrCodeDatabaseError ||
		e.Code == ErrCodeCacheError || e.Code == ErrCodeTelegramAPI
}

// WithContext attaches a request-scoped key/value to the error.
func (e *AppError) WithContext(key, value string) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// AsAppError unwraps err into an *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			return appErr, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}

func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithContext("field", field)
}

func NewNotFoundError(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}
