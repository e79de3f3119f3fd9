package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StructValidator validates structs through their `validate` tags.
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator constructs a StructValidator that names fields after
// their json tags, so error messages match the request payload.
func NewStructValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &StructValidator{validate: v}
}

// Validate checks value, which must be a struct or a pointer to one. When
// fields are given only those json-named fields are checked.
func (s *StructValidator) Validate(ctx context.Context, value any, fields ...string) error {
	t := reflect.TypeOf(value)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}

	var err error
	if len(fields) > 0 {
		structFields, lookupErr := s.structFieldNames(t, fields)
		if lookupErr != nil {
			return lookupErr
		}
		err = s.validate.StructPartialCtx(ctx, value, structFields...)
	} else {
		err = s.validate.StructCtx(ctx, value)
	}

	return toValidationError(err)
}

// structFieldNames maps json names to the Go field names StructPartial expects.
func (s *StructValidator) structFieldNames(t reflect.Type, jsonNames []string) ([]string, error) {
	result := make([]string, 0, len(jsonNames))
	for _, name := range jsonNames {
		found := false
		for i := 0; i < t.NumField(); i++ {
			fld := t.Field(i)
			if strings.SplitN(fld.Tag.Get("json"), ",", 2)[0] == name {
				result = append(result, fld.Name)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
		}
	}
	return result, nil
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, e.Field()+": "+formatFieldError(e))
	}

	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(messages, "; "))
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
