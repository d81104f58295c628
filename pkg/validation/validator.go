package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a go-playground validator configured to report JSON field names.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator. Rules are read from `validate` struct tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Fields validates only the named struct fields, in declaration order, and
// returns the first failure as a *FieldError. A nil return means all passed.
func (v *Validator) Fields(s any, fields ...string) error {
	err := v.v.StructPartial(s, fields...)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &FieldError{Field: fe.Field(), Message: formatFieldError(fe)}
	}
	return err
}

// FieldError names the offending field and a human-readable reason.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + " " + e.Message }

// PayloadMessage describes why a request body could not be decoded.
func PayloadMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	switch {
	case errors.As(err, &ute):
		if ute.Field != "" {
			return fmt.Sprintf("%s must be of type %s", ute.Field, ute.Type.String())
		}
		return "invalid json payload"
	case errors.As(err, &se), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return "invalid json payload"
	}
	return "invalid payload"
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	default:
		return fmt.Sprintf("validation failed for '%s'", fe.Tag())
	}
}
