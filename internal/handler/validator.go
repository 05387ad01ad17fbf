package handler

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/Mivy_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// txHashPattern matches a hex transaction hash with an optional 0x prefix
var txHashPattern = regexp.MustCompile(`^(0x)?[0-9a-fA-F]{1,64}$`)

// InitValidator initializes the global validator
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("txhash", validateTxHash)
		_ = v.RegisterValidation("chatrole", validateChatRole)
		validate = &Validator{validate: v}
	})
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	InitValidator()
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by lowercased field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "url":
			errs[field] = "Invalid URL"
		case "eth_addr":
			errs[field] = "Invalid wallet address"
		case "txhash":
			errs[field] = "Invalid transaction hash"
		case "chatrole":
			errs[field] = "Invalid chat role"
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// validateTxHash accepts an empty value; presence is checked by the service
func validateTxHash(fl validator.FieldLevel) bool {
	hash := fl.Field().String()
	if hash == "" {
		return true
	}
	return txHashPattern.MatchString(hash)
}

// validateChatRole accepts an empty role, which defaults to observer
func validateChatRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	if role == "" {
		return true
	}
	return domain.ChatRole(strings.ToLower(role)).Valid()
}
