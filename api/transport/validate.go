package transport

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations under the wire names, not Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks req against its struct tags and returns one violation per
// broken constraint, never just the first.
func Validate(req interface{}) []FieldViolation {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldViolation{{Field: "", Constraint: err.Error()}}
	}

	out := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		constraint := fe.Tag()
		if fe.Param() != "" {
			constraint += "=" + fe.Param()
		}
		out = append(out, FieldViolation{
			Field:      strings.TrimPrefix(fe.Namespace(), typeName(fe)+"."),
			Constraint: constraint,
		})
	}
	return out
}

func typeName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i > 0 {
		return ns[:i]
	}
	return ns
}
