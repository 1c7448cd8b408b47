package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxUsernameLength = 64

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return validUsername(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register username validation: %v", err))
	}
	return v
}

func validUsername(name string) bool {
	if name == "" || len(name) > maxUsernameLength {
		return false
	}
	for _, r := range name {
		if r > 127 {
			return false
		}
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case '-', '_', '.':
			continue
		default:
			return false
		}
	}
	return true
}

// invalidInput turns a validator failure into an ErrInvalidInput naming the
// offending fields.
func invalidInput(op string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%s: %v: %w", op, err, ErrInvalidInput)
	}
	fields := make([]string, 0, len(verrs))
	for _, verr := range verrs {
		fields = append(fields, strings.ToLower(verr.Field())+" fails "+verr.Tag())
	}
	return fmt.Errorf("%s: %s: %w", op, strings.Join(fields, ", "), ErrInvalidInput)
}
