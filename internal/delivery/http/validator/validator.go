// Package validator adapts go-playground/validator to echo's Validator
// interface and registers the domain's custom format tags.
package validator

import (
	"net/http"

	"demoapp/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps the validator instance for echo.
type CustomValidator struct {
	validator *validator.Validate
}

// New builds the validator with the custom payment and account tags
// registered. The tag implementations delegate to the pure classification
// functions in internal/validation.
func New() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("username_format", func(fl validator.FieldLevel) bool {
		ok, _ := validation.Username(fl.Field().String())

		return ok
	})
	_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		ok, _ := validation.Password(fl.Field().String())

		return ok
	})
	_ = v.RegisterValidation("email_format", func(fl validator.FieldLevel) bool {
		ok, _ := validation.Email(fl.Field().String())

		return ok
	})
	_ = v.RegisterValidation("card_number", func(fl validator.FieldLevel) bool {
		ok, _ := validation.CardNumber(fl.Field().String())

		return ok
	})
	_ = v.RegisterValidation("cvv_format", func(fl validator.FieldLevel) bool {
		ok, _ := validation.CVV(fl.Field().String())

		return ok
	})

	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator. Failures surface as 400s through the
// central error handler.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
