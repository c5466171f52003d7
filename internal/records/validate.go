package records

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so messages match the API payloads.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notarization_type", func(fl validator.FieldLevel) bool {
		return NotarizationType(fl.Field().String()).Valid()
	})

	return v
}

// FieldError is one failed field check.
type FieldError struct {
	Field string
	Tag   string
}

// Validate checks the struct tags on rec and returns the failing fields in
// declaration order. A nil result means rec is valid.
func Validate(rec any) []FieldError {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Tag: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}
