// Package validate wraps go-playground/validator with readable field messages.
package validate

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Fields validates payload and returns one message per invalid field, keyed by
// the lower-cased field name. It returns nil when payload is valid.
func Fields(payload any) map[string]string {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			out[field] = fmt.Sprintf("The %s field is required.", fe.Field())
		case "url":
			out[field] = fmt.Sprintf("The %s must be a valid URL.", fe.Field())
		case "hostname_port":
			out[field] = fmt.Sprintf("The %s must be a host:port address.", fe.Field())
		case "oneof":
			out[field] = fmt.Sprintf("The %s must be one of: %s.", fe.Field(), fe.Param())
		case "min":
			out[field] = fmt.Sprintf("The %s must be at least %s.", fe.Field(), fe.Param())
		case "max":
			out[field] = fmt.Sprintf("The %s must be at most %s.", fe.Field(), fe.Param())
		default:
			out[field] = fmt.Sprintf("The %s field is invalid.", fe.Field())
		}
	}
	return out
}

// Struct validates payload and folds the field messages into one error.
func Struct(payload any) error {
	fields := Fields(payload)
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}
	return errors.New(strings.Join(msgs, " "))
}
