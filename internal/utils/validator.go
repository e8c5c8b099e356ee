// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var hashPattern = regexp.MustCompile("^[0-9a-fA-F]{64}$")

func init() {
	validate = validator.New()
	validate.RegisterValidation("content_hash", validateContentHash)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Hashes are opaque content-store references: fixed-length hex, never
// interpreted beyond this shape check.
func validateContentHash(fl validator.FieldLevel) bool {
	return hashPattern.MatchString(fl.Field().String())
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "content_hash":
		return e.Field() + " must be a 64-character hex digest"
	default:
		return e.Field() + " is invalid"
	}
}
