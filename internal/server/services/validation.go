package services

import (
	"strconv"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/go-playground/validator/v10"
)

// User-facing validation messages.
const (
	msgInvalidEmail       = "Please enter a valid email."
	msgEmailInUse         = "Email already in use."
	msgShortName          = "Length of name must be at least 5 characters."
	msgShortPassword      = "Password must be at least 6 characters long."
	msgBlankPassword      = "Password cannot be blank."
	msgWrongCredentials   = "Wrong credentials."
	msgInvalidTitle       = "Enter a valid title."
	msgInvalidDescription = "Enter a valid description."
	msgNothingToUpdate    = "Contents to be updated not available."
)

const (
	minNameLength     = 5
	minPasswordLength = 6
)

var validate = validator.New()

func isValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// hasMinLength counts runes, not bytes.
func hasMinLength(s string, n int) bool {
	return validate.Var(s, "min="+strconv.Itoa(n)) == nil
}

func isPresent(s string) bool {
	return validate.Var(s, "required") == nil
}

func duplicateEmailError() error {
	return &common.ValidationError{Message: msgEmailInUse, Err: common.ErrorDuplicateEmail}
}

func wrongCredentialsError() error {
	return &common.ValidationError{Message: msgWrongCredentials, Err: common.ErrorWrongCredentials}
}
