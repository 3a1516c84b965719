package web

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to echo's Validator interface.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator ready to be assigned to echo.Echo.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks struct tags and converts failures to a 400 Error.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return NewError(http.StatusBadRequest, err.Error())
	}
	return nil
}
