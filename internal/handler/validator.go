package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to echo's Validator interface
// so request DTOs can declare their field constraints as struct tags.
// Install it on the echo instance at startup: e.Validator = handler.NewValidator().
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a Validator with the default tag name ("validate").
func NewValidator() *Validator {
	return &Validator{v: validator.New()}
}

// Validate implements echo.Validator.  Constraint violations are turned
// into a 400 response so handlers can simply return the error.
func (cv *Validator) Validate(i interface{}) error {
	if err := cv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
