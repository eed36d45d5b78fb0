package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "smartclinic-backend/internal/common/errors"
)

var validate = validator.New()

// Struct validates a DTO by its `validate` tags and converts the first
// failure into an AppError suitable for the API envelope.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return apperrors.NewValidationError(fe.Field(), fmt.Sprintf("failed on '%s' rule", fe.Tag()))
	}
	return apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid request payload")
}
