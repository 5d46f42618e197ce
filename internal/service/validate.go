package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"estatehub-backend/internal/repository"
)

var validate = newValidator()

// placeNamePattern accepts words of letters separated by single spaces.
var placeNamePattern = regexp.MustCompile(`^[A-Za-z]+(?: [A-Za-z]+)*$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return placeNamePattern.MatchString(fl.Field().String())
	})
	return v
}

// checkVar records msg against field when value fails the validator tag.
func checkVar(v *ValidationError, field, value, tag, msg string) {
	if err := validate.Var(value, tag); err != nil {
		v.Add(field, msg)
	}
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

const minPasswordLength = 8

// checkPassword enforces the account password policy: at least eight
// characters with an upper case letter, a lower case letter, a digit and a
// special character.
func checkPassword(v *ValidationError, field, password string) {
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if len(password) < minPasswordLength || !upper || !lower || !digit || !special {
		v.Add(field, "password must be at least 8 characters and include upper and lower case letters, a number and a special character")
	}
}

// uniqueField maps a unique constraint violation onto the input field that
// caused it. ok is false for any other error.
func uniqueField(err error, fields map[string]string) (string, bool) {
	if !errors.Is(err, repository.ErrUniqueViolation) {
		return "", false
	}
	for constraint, field := range fields {
		if strings.HasSuffix(err.Error(), constraint) {
			return field, true
		}
	}
	return "", false
}
