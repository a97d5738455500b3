package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"course-scanner/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator. Field names in errors are taken
// from the schema tag, then the json tag, so messages use wire names.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(fieldName)
	})
	return validate
}

// Struct validates v and converts failures into *apperrors.ValidationError,
// preserving struct field order.
func Struct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &apperrors.ValidationError{}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out.Fields = append(out.Fields, fe.Field())
		default:
			out.Invalid = append(out.Invalid, fe.Field())
		}
	}
	return out
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"schema", "json"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
