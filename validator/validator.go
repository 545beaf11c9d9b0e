// Package validator wraps go-playground/validator with the custom rules and
// the human readable messages used by the content and auth services.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/helpinghands/ngo-backend/internal"
)

// phoneRegex is a regular expression to validate phone numbers.
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\s\(\)\-]{5,}$`)

// ValidationError represents an individual validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is a slice of ValidationError.
type ValidationErrors []ValidationError

// Error returns a string representation of the validation errors.
func (ve ValidationErrors) Error() string {
	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return sb.String()
}

// Validator is a wrapper around the go-playground/validator package.
type Validator struct {
	validator *validator.Validate
}

// New creates a new Validator instance. Field names in the errors are the
// JSON names of the fields.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// Register custom validation functions
	_ = v.RegisterValidation("phone", validatePhone)
	_ = v.RegisterValidation("mail", validateEmail)

	return &Validator{
		validator: v,
	}
}

// Validate validates a struct using the validator package. Failed rules are
// returned as ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	validationErrors := make(ValidationErrors, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldErr.Field(),
			Message: getErrorMessage(fieldErr),
		})
	}
	return validationErrors
}

// validatePhone validates a phone number.
func validatePhone(fl validator.FieldLevel) bool {
	// If the field is empty, it's valid (use required tag if it's required)
	if fl.Field().String() == "" {
		return true
	}

	// Use the pre-compiled regex for better performance
	return phoneRegex.MatchString(fl.Field().String())
}

// validateEmail checks the local@domain.tld shape shared with the database
// validators.
func validateEmail(fl validator.FieldLevel) bool {
	if fl.Field().String() == "" {
		return true
	}
	return internal.ValidEmail(fl.Field().String())
}

// getErrorMessage returns a human-readable error message for a validation error.
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email", "mail":
		return "Invalid email format"
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters long", err.Param())
		}
		return fmt.Sprintf("Must be at least %s", err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long", err.Param())
		}
		return fmt.Sprintf("Must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", err.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", err.Param())
	case "url":
		return "Invalid URL format"
	case "phone":
		return "Invalid phone number format"
	default:
		return fmt.Sprintf("Invalid value: %s", err.Tag())
	}
}
