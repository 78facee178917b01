package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds the validator shared by handlers and services.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return strings.ToLower(field.Name)
		}
		return name
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return !field.IsZero()
		}
		return strings.TrimSpace(field.String()) != ""
	})
	return validate
}

// SubmissionValidator checks that submissions carry every required field.
type SubmissionValidator struct {
	validate *validator.Validate
}

// NewSubmissionValidator wraps validate; a nil validate gets a fresh one.
func NewSubmissionValidator(validate *validator.Validate) SubmissionValidator {
	if validate == nil {
		validate = NewValidator()
	}
	return SubmissionValidator{validate: validate}
}

// Validate returns a *ValidationError naming the first offending field.
func (v SubmissionValidator) Validate(payload interface{}) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return &ValidationError{Reason: err.Error()}
	}

	first := fieldErrors[0]
	switch first.Tag() {
	case "notblank", "required":
		return &ValidationError{Field: first.Field(), Reason: "is required"}
	default:
		return &ValidationError{Field: first.Field(), Reason: "is invalid"}
	}
}
