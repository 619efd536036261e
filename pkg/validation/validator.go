package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SourceSchemes lists the URI schemes an edge source may use. A value with no
// scheme is a local file path.
var SourceSchemes = []string{"s3", "postgres", "postgresql", "tcp", "ipc", "inproc", "file"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("source_uri", func(fl validator.FieldLevel) bool {
		return ValidateSourceURI(fl.Field().String()) == nil
	})
	return v
}

// ValidateStruct checks the `validate` tags of s and returns the first
// failure in a readable form.
func ValidateStruct(s any) error {
	if s == nil {
		return errors.New("value cannot be nil")
	}
	return formatValidationError(validate.Struct(s))
}

// ValidateSourceURI accepts a local path or a URI with a known scheme.
func ValidateSourceURI(raw string) error {
	if raw == "" {
		return errors.New("source is empty")
	}
	if !strings.Contains(raw, "://") {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("source %q: %w", raw, err)
	}
	for _, s := range SourceSchemes {
		if u.Scheme == s {
			return nil
		}
	}
	return fmt.Errorf("source %q: unsupported scheme %q", raw, u.Scheme)
}

func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, e.Param())
		case "gte", "min":
			return fmt.Errorf("%s: must be at least %s", field, e.Param())
		case "lte", "max":
			return fmt.Errorf("%s: must not exceed %s", field, e.Param())
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, e.Param())
		case "hostname_port":
			return fmt.Errorf("%s: %q is not a host:port address", field, e.Value())
		case "source_uri":
			return fmt.Errorf("%s: %w", field, ValidateSourceURI(fmt.Sprint(e.Value())))
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}
	return err
}
