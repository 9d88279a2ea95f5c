package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator shared by the HTTP handlers.
func New() *validatorv10.Validate {
	return validatorv10.New()
}

// Check runs struct validation and returns a field→message map, or nil when
// the value is valid.
func Check(v *validatorv10.Validate, value interface{}) map[string]string {
	err := v.Struct(value)
	if err == nil {
		return nil
	}

	out := map[string]string{}
	if ve, ok := err.(validatorv10.ValidationErrors); ok {
		for _, fe := range ve {
			out[fe.StructNamespace()] = fe.Error()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
