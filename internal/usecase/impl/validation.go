package impl

import (
	"strings"
	"unicode/utf8"

	domainerrors "campus/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// validateRequired maps validator failures onto ErrMissingFields, naming the
// offending fields in the details.
func validateRequired(validate *validator.Validate, input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(domainerrors.ErrInvalidInput, err.Error())
	}

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, fieldErr.Field())
	}

	return errors.WithStack(domainerrors.ErrMissingFields.WithDetails("missing: " + strings.Join(fields, ", ")))
}

// passwordLongEnough counts characters, not bytes.
func passwordLongEnough(password string, minLength int) bool {
	return utf8.RuneCountInString(password) >= minLength
}
