package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"cityhelp-be/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs struct tags and reports the first failure as a
// Validation error with a readable message.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errs.Validation(err.Error())
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required", "required_with":
		return errs.Validation(fe.Field() + " is required")
	case "max":
		return errs.Validation(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	case "min":
		return errs.Validation(fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
	case "email":
		return errs.Validation("email must be a valid email address")
	case "gte", "lte":
		return errs.Validation(fe.Field() + " is out of range")
	default:
		return errs.Validation(fe.Field() + " is invalid")
	}
}
