package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/edublog/edublog-client/internal/core/domain"
)

// ValidationError lists the input problems found before any request is
// sent. It matches domain.ErrInvalidInput.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Message()
}

// Message is the user-facing text, e.g. "title is required; email must be a valid email".
func (e *ValidationError) Message() string {
	return strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// inputValidator wraps go-playground/validator and reports fields by their
// JSON names.
type inputValidator struct {
	v *validator.Validate
}

func newInputValidator() *inputValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return &inputValidator{v: v}
}

func (iv *inputValidator) check(i any) error {
	if err := iv.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return &ValidationError{Fields: msgs}
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
