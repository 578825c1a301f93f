package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// requestValidator is the echo.Validator for request DTOs. Problems are
// reported under the name the client sent: the json key for bodies, the
// query key for listing parameters.
type requestValidator struct {
	v *validator.Validate
}

func NewValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(wireName)
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	problems := make([]string, len(ve))
	for n, fe := range ve {
		problems[n] = describe(fe)
	}
	return errors.New(strings.Join(problems, "; "))
}

// wireName picks the json or query key of a field, falling back to the
// lowercased Go name.
func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			break
		}
		if name != "" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

func describe(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "oneof":
		// Multi-word values are quoted in the tag.
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), "'", ""))
	}
	return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
}
