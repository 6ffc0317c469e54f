package dispatch

import (
	"fmt"
	"strings"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every failure collected during the validation
// stage, in the order the validators reported them. Its presence means the
// request's handler was never invoked.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Messages groups failures by field for the boundary's response envelope.
func (e *ValidationError) Messages() map[string][]string {
	out := make(map[string][]string, len(e.Fields))
	for _, fe := range e.Fields {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// HasField reports whether any failure was recorded against the field.
func (e *ValidationError) HasField(field string) bool {
	for _, fe := range e.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}
