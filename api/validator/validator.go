// Package validator wraps go-playground/validator behind a small surface
// that reports per-field errors in a shape ready for JSON responses.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator validates request body structs against their validate tags.
type Validator struct {
	cli *validator.Validate
}

// A ValidationError describes one failed constraint on a struct field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New returns a Validator with required-struct validation enabled.
func New() *Validator {
	return &Validator{
		cli: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateStruct validates s and returns one entry per failed field. A nil
// result means s is valid.
func (v *Validator) ValidateStruct(s any) []ValidationError {
	err := v.cli.Struct(s)
	if err == nil {
		return nil
	}
	errs := make([]ValidationError, 0)
	for _, fe := range err.(validator.ValidationErrors) {
		errs = append(errs, ValidationError{
			Field:   fe.StructField(),
			Message: fe.Error(),
		})
	}
	return errs
}
