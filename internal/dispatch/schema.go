package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Schema adapts go-playground/validator struct tags into a pipeline
// validator, so declarative rules run through the same validation stage as
// the I/O-backed ones and the dispatcher never has to distinguish them.
func Schema[Req any](v *validator.Validate) func(ctx context.Context, req Req) ([]FieldError, error) {
	return func(_ context.Context, req Req) ([]FieldError, error) {
		err := v.Struct(req)
		if err == nil {
			return nil, nil
		}

		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			// Not rule failures — e.g. a non-struct request. Wiring bug.
			return nil, err
		}

		fields := make([]FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: ruleMessage(fe),
			})
		}
		return fields, nil
	}
}

// ruleMessage converts a single rule failure into a human-readable message.
func ruleMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be %s or less", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
