package common

import (
	"fmt"
	"reflect"
	"strings"

	"go-fintrack/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// maxAmount mirrors the NUMERIC(10,2) column: at most eight integer digits.
var maxAmount = decimal.New(1, 8)

func newValidator() *validator.Validate {
	v := validator.New()

	// Report errors under the HTML input name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// notblank: free-text inputs must survive trimming. `required` alone
	// lets a whitespace-only submission through.
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// amount: a non-negative decimal with at most two fractional digits.
	// Exact fixed-point only; float parsing would drift on currency values.
	v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		if err != nil {
			return false
		}
		if d.IsNegative() || d.Exponent() < -2 {
			return false
		}
		return d.LessThan(maxAmount)
	})

	return v
}

// ValidateForm runs struct-tag validation on a form DTO and translates the
// failures into per-field messages suitable for inline rendering.
func ValidateForm(form interface{}) model.FieldErrors {
	var fieldErrors model.FieldErrors

	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		fieldErrors.Add("form", "Invalid submission.")
		return fieldErrors
	}

	for _, ve := range validationErrors {
		fieldErrors.Add(ve.Field(), messageFor(ve))
	}
	return fieldErrors
}

func messageFor(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", ve.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", ve.Param())
	case "eqfield":
		return "Passwords do not match."
	case "oneof":
		return "Select a valid choice."
	case "amount":
		return "Enter a non-negative amount with at most two decimal places."
	case "datetime":
		return "Enter a valid date (YYYY-MM-DD)."
	default:
		return "Invalid value."
	}
}
