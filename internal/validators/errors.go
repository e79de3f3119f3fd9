package validators

import "errors"

var (
	// ErrValidation wraps every rule violation reported by [StructValidator].
	ErrValidation = errors.New("validation failed")

	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)
