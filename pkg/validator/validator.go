package validator

import (
	"fmt"
	"reflect"
	"strings"

	"go-mesinkasir/pkg/nullable"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
	Kind        reflect.Kind
}

var validate = validator.New()

func init() {
	// Report json names ("buy_price") instead of Go names ("BuyPrice")
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// nullable.Field: absent and null both validate as "no value"
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(nullable.Validatable); ok {
			return v.ValidationValue()
		}
		return nil
	},
		nullable.Field[int64]{},
		nullable.Field[uint]{},
		nullable.Field[string]{},
		nullable.Field[bool]{},
	)
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "body", Tag: "invalid"}}
		}
		for _, err := range validationErrors {
			var element ErrorResponse
			element.FailedField = err.Field()
			element.Tag = err.Tag()
			element.Value = err.Param()
			element.Kind = err.Kind()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Message renders a human readable message in the wording the POS frontend expects.
func (e *ErrorResponse) Message() string {
	field := strings.ReplaceAll(e.FailedField, "_", " ")
	switch e.Tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		if e.Kind == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", field, e.Value)
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", field, e.Value)
	case "min", "gte":
		if e.Kind == reflect.String {
			return fmt.Sprintf("The %s field must be at least %s characters.", field, e.Value)
		}
		return fmt.Sprintf("The %s field must be at least %s.", field, e.Value)
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", field, e.Value)
	case "numeric":
		return fmt.Sprintf("The %s field must be a number.", field)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

// ToMap groups messages per field, e.g. {"name": ["The name field is required."]}.
func ToMap(errs []*ErrorResponse) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, e := range errs {
		out[e.FailedField] = append(out[e.FailedField], e.Message())
	}
	return out
}
