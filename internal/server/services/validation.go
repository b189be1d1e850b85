package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// normalizeName trims and NFC-normalizes free-form identifiers so visually
// identical names compare equal.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizeEmail(s string) string {
	return strings.ToLower(normalizeName(s))
}

// violation maps a failed "Field.tag" to the message shown to clients.
type violation struct {
	key string
	msg string
}

// Rules are listed in reporting order: when several fields fail, the
// earliest rule wins.
var (
	registerRules = []violation{
		{"Username.required", msgUsernameEmpty},
		{"Email.required", msgEmailEmpty},
		{"Password.required", msgPasswordTooShort},
		{"Password.min", msgPasswordTooShort},
		{"Email.email", msgInvalidEmail},
		{"Email.max", msgInvalidEmail},
		{"Username.max", msgUsernameTooLong},
	}

	profileRules = []violation{
		{"Username.min", msgUsernameEmpty},
		{"Username.max", msgUsernameTooLong},
		{"Email.min", msgEmailEmpty},
		{"Email.email", msgInvalidEmail},
		{"Email.max", msgInvalidEmail},
	}
)

// checkStruct validates v by its tags and reports the first matching rule
// as a validation error.
func checkStruct(v any, rules []violation) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return common.NewInternalError(fmt.Errorf("validate request: %w", err))
	}

	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Field()+"."+fe.Tag()] = true
	}
	for _, r := range rules {
		if failed[r.key] {
			return common.NewValidationError(r.msg)
		}
	}
	return common.NewValidationError("Invalid " + strings.ToLower(fieldErrs[0].Field()))
}
