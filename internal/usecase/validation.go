package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/customers/internal/domain/errors"
	"github.com/polkiloo/customers/internal/domain/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// maxPasswordBytes is the bcrypt input limit; validator's max counts runes, not bytes.
const maxPasswordBytes = 72

// ValidateRegistration checks registration fields and reports the violations as ErrValidation.
func ValidateRegistration(r model.Registration) error {
	var msgs []string
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %v", domainErrors.ErrValidation, err)
		}
		for _, fe := range fieldErrs {
			msgs = append(msgs, describeFieldError(fe))
		}
	}
	if len(r.Password) > maxPasswordBytes {
		msgs = append(msgs, fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}

	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domainErrors.ErrValidation, strings.Join(msgs, "; "))
}

// ValidateEmail checks the address format only.
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: email %q is invalid", domainErrors.ErrValidation, email)
	}
	return nil
}

// ValidateAge enforces the inclusive age bounds.
func ValidateAge(age int) error {
	if age < model.MinAge || age > model.MaxAge {
		return fmt.Errorf("%w: age must be between %d and %d", domainErrors.ErrValidation, model.MinAge, model.MaxAge)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return field + " must be one of " + fe.Param()
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	default:
		return field + " is invalid"
	}
}
