// Package validation checks domain structs against their declared `validate`
// tags using go-playground/validator and converts failures to
// *domain.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/recipebox/internal/domain"
)

// Validator wraps go-playground/validator with domain error conversion.
// It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that reports fields by their json tag name, which
// matches the form field names the handlers use.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates a struct. It returns nil, a *domain.ValidationError, or
// an error describing misuse (e.g. passing a non-struct).
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validation.Validate: %w", err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, e := range fieldErrs {
		fields[e.Field()] = friendlyMessage(e)
	}
	return &domain.ValidationError{Fields: fields}
}

// ValidateField checks a single value against a validator tag expression
// (e.g. "gte=0") and reports failures under field.
func (v *Validator) ValidateField(field string, value any, tag string) error {
	err := v.v.Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validation.ValidateField: %w", err)
	}
	return domain.NewValidationError(field, friendlyMessage(fieldErrs[0]))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
