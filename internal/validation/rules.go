// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/casting/internal/errors"
)

// MaxFieldLength bounds every free-text record field.
const MaxFieldLength = 255

// WrapValidationError marks validation errors as domain ErrInvalidInput.
// The message reads "invalid input: <field>: <reason>."
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// RequiredText is the rule set for a mandatory free-text field.
func RequiredText() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("is required"),
		NotBlank,
		validation.RuneLength(1, MaxFieldLength).Error(
			fmt.Sprintf("must be at most %d characters", MaxFieldLength),
		),
	}
}

// OptionalText validates a pointer field of a partial update: absent is fine,
// present must satisfy RequiredText.
var OptionalText = validation.By(func(value any) error {
	s, ok := value.(*string)
	if !ok || s == nil {
		return nil
	}
	return validation.Validate(*s, RequiredText()...)
})
