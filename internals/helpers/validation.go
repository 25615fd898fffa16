// file: internals/helpers/validation.go
package helper

import (
	"github.com/go-playground/validator/v10"
)

// ValidationMap flattens validator.v10 errors into the envelope's
// field → messages shape.
func ValidationMap(err error) map[string][]string {
	out := map[string][]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "This field is required."
		case "email":
			msg = "Invalid email format."
		case "min":
			msg = "Must be at least " + fe.Param() + " characters."
		case "max":
			msg = "Must be at most " + fe.Param() + " characters."
		case "oneof":
			msg = "Must be one of: " + fe.Param() + "."
		case "dive":
			msg = "Invalid list entry."
		default:
			msg = "Invalid value."
		}
		out[field] = append(out[field], msg)
	}
	return out
}
