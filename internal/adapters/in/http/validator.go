package http

import "github.com/go-playground/validator/v10"

// RequestValidator adapts go-playground/validator to echo's Validator
// interface. Struct tags on the request DTOs drive the checks.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator for request binding.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate checks a bound request struct against its validate tags.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
