package httpapp

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	minPasswordLength = 5
	// bcrypt rejects longer input
	maxPasswordBytes = 72
)

var phonePattern = regexp.MustCompile(`^[0-9]{6,16}$`)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// NewValidator registers the account and city tags used by request DTOs:
// password, phone and notblank.
func NewValidator() *CustomValidator {
	validate := validator.New()

	mustRegister(validate, "password", validatePassword)
	mustRegister(validate, "phone", validatePhone)
	mustRegister(validate, "notblank", validateNotBlank)

	return &CustomValidator{validator: validate}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// at least minPasswordLength characters and at most maxPasswordBytes bytes,
// with one lowercase letter and one digit
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len([]rune(password)) < minPasswordLength || len(password) > maxPasswordBytes {
		return false
	}

	var lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	return lower && digit
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
