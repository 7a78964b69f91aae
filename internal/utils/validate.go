package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"estatehub/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under the names clients send.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	// bcrypt only hashes the first 72 bytes; `max` counts runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})

	return v
}

// ValidateStruct checks request against its `validate` tags and returns
// models.ValidationErrors keyed by JSON field name, or nil.
func ValidateStruct(request any) error {
	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := models.ValidationErrors{}
	for _, fieldErr := range fieldErrs {
		errs.Add(fieldErr.Field(), validationMessage(fieldErr))
	}
	return errs.OrNil()
}

// ValidateVar checks a single value, such as an optional field of a partial
// update, and records a failure on errs under field.
func ValidateVar(errs models.ValidationErrors, field string, value any, tag string) {
	err := validate.Var(value, tag)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		errs.Add(field, validationMessage(fieldErrs[0]))
		return
	}
	errs.Add(field, "is invalid")
}

func validationMessage(fieldErr validator.FieldError) string {
	param := fieldErr.Param()
	isText := fieldErr.Kind() == reflect.String

	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if isText {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return "must be at least " + param
	case "max":
		if isText {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return "must be at most " + param
	case "gt":
		return "must be greater than " + param
	case "gte":
		if param == "0" {
			return "must not be negative"
		}
		return "must be at least " + param
	case "maxbytes":
		return fmt.Sprintf("must be at most %s bytes", param)
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(param, " ", ", ")
	}
	return "is invalid"
}
