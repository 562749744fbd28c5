package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrValidation wraps every validation failure.
var ErrValidation = errors.New("validation failed")

var (
	personNamePattern = regexp.MustCompile(`^[a-zA-Z ]+$`)
	validate          = newValidator()
)

const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 5

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterRules(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterRules adds the domain's custom tags (person_name, password,
// gender, activitylevel, mealtype, readingtype) to v.
func RegisterRules(v *validator.Validate) error {
	rules := map[string]func(string) bool{
		"person_name":   personNamePattern.MatchString,
		"password":      validPassword,
		"gender":        func(s string) bool { return Gender(s).Valid() },
		"activitylevel": func(s string) bool { return ActivityLevel(s).Valid() },
		"mealtype":      func(s string) bool { return MealType(s).Valid() },
		"readingtype":   func(s string) bool { return BloodReadingType(s).Valid() },
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			return fmt.Errorf("failed to register %s rule: %w", tag, err)
		}
	}
	return nil
}

// Validate checks v against its struct tags.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}
	return nil
}

// ValidatePassword checks a plain text password: at least MinPasswordLength
// characters with a letter, a digit and a special character.
func ValidatePassword(password string) error {
	if err := validate.Var(password, "password"); err != nil {
		return fmt.Errorf("%w: password must be at least %d characters and contain a letter, a digit and a special character",
			ErrValidation, MinPasswordLength)
	}
	return nil
}

func validPassword(s string) bool {
	if len([]rune(s)) < MinPasswordLength {
		return false
	}
	var letter, digit, special bool
	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return letter && digit && special
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
