package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugRegexp = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegexp.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// validateText checks an already trimmed text against its length bounds;
// max <= 0 leaves it unbounded. Lengths are counted in characters.
func validateText(field string, text string, min int, max int) *ValidationError {
	tag := fmt.Sprintf("required,min=%d", min)
	if max > 0 {
		tag += fmt.Sprintf(",max=%d", max)
	}

	if err := validate.Var(text, tag); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return newValidationError(field, fieldErrorMessage(fieldErrs[0]))
		}
		return newValidationError(field, err.Error())
	}

	return nil
}

func validateStruct(s interface{}) *ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return newValidationError("input", err.Error())
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.add(fe.Field(), fieldErrorMessage(fe))
	}

	return verr
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "slug":
		return "may contain only letters, digits, hyphens and underscores"
	default:
		return fmt.Sprintf("failed on %q", fe.Tag())
	}
}
