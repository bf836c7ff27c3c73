package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports one invalid configuration value.
type ValidationError struct {
	Path string // dotted key, e.g. "keywords.in_progress[0]"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

var validate = newValidator()

// newValidator reports fields by their config file key.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the merged configuration. Every invalid value is reported
// as a *ValidationError joined into the result.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, &ValidationError{Path: fieldPath(fe), Err: errors.New(describe(fe))})
	}
	return errors.Join(errs...)
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	_, path, ok := strings.Cut(fe.Namespace(), ".")
	if !ok {
		return fe.Field()
	}
	return path
}

func describe(fe validator.FieldError) string {
	var msg string
	switch fe.Tag() {
	case "min":
		msg = "must be at least " + fe.Param()
	case "max":
		msg = "must be at most " + fe.Param()
	case "oneof":
		msg = "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "datetime":
		msg = "must be a date formatted YYYY-MM-DD"
	case "required":
		return "must not be empty"
	default:
		msg = "failed " + fe.Tag() + " check"
	}
	return fmt.Sprintf("%s (got %v)", msg, fe.Value())
}
