package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationErrors flattens a validator error into a field -> message map so
// a single response reports every violated rule.
func validationErrors(err error) map[string]string {
	fieldErrs := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrs["_schema"] = "Invalid input."
		return fieldErrs
	}

	for _, fe := range verrs {
		fieldErrs[fe.Field()] = validationMessage(fe)
	}
	return fieldErrs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Missing data for required field."
	case "min", "max":
		return "Length must be between 1 and 100."
	case "len":
		return fmt.Sprintf("Length must be %s.", fe.Param())
	case "datetime":
		return "Not a valid date."
	}
	return "Invalid value."
}
