package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type createWidget struct {
	Name string `validate:"required"`
	Size int    `validate:"gte=1"`
}

type unregistered struct{}

func TestDispatcher_HappyPath(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	err := RegisterHandler(d, func(_ context.Context, req createWidget) (string, error) {
		return "widget:" + req.Name, nil
	})
	if err != nil {
		t.Fatalf("RegisterHandler returned error: %v", err)
	}

	got, err := Send[string](context.Background(), d, createWidget{Name: "a", Size: 1})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if got != "widget:a" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestDispatcher_NoHandler(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	if _, err := d.Send(context.Background(), unregistered{}); err == nil {
		t.Fatalf("expected error for unregistered request type")
	}
}

func TestDispatcher_DuplicateHandler(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	h := func(_ context.Context, req createWidget) (string, error) { return "", nil }
	if err := RegisterHandler(d, h); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := RegisterHandler(d, h); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestDispatcher_CollectsAllFailures(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	RegisterValidator(d, func(_ context.Context, req createWidget) ([]FieldError, error) {
		if req.Name == "taken" {
			return []FieldError{{Field: "name", Message: "name already in use"}}, nil
		}
		return nil, nil
	})
	RegisterValidator(d, func(_ context.Context, req createWidget) ([]FieldError, error) {
		if req.Size > 10 {
			return []FieldError{{Field: "size", Message: "size too large"}}, nil
		}
		return nil, nil
	})
	if err := RegisterHandler(d, func(_ context.Context, req createWidget) (string, error) {
		return "", nil
	}); err != nil {
		t.Fatalf("RegisterHandler returned error: %v", err)
	}

	_, err := d.Send(context.Background(), createWidget{Name: "taken", Size: 11})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	// Both independent failures are present, not just the first.
	if len(ve.Fields) != 2 {
		t.Fatalf("expected 2 failures, got %d: %+v", len(ve.Fields), ve.Fields)
	}
	if !ve.HasField("name") || !ve.HasField("size") {
		t.Fatalf("missing expected fields: %+v", ve.Fields)
	}
}

func TestDispatcher_RejectionSkipsHandler(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	invoked := 0
	RegisterValidator(d, func(_ context.Context, req createWidget) ([]FieldError, error) {
		return []FieldError{{Field: "name", Message: "always rejected"}}, nil
	})
	if err := RegisterHandler(d, func(_ context.Context, req createWidget) (string, error) {
		invoked++
		return "", nil
	}); err != nil {
		t.Fatalf("RegisterHandler returned error: %v", err)
	}

	_, err := d.Send(context.Background(), createWidget{Name: "a", Size: 1})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if invoked != 0 {
		t.Fatalf("handler ran %d times despite rejection", invoked)
	}
}

func TestDispatcher_ValidatorInfraErrorPropagates(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	storeDown := errors.New("store unavailable")
	RegisterValidator(d, func(_ context.Context, req createWidget) ([]FieldError, error) {
		return nil, storeDown
	})
	if err := RegisterHandler(d, func(_ context.Context, req createWidget) (string, error) {
		t.Fatalf("handler must not run")
		return "", nil
	}); err != nil {
		t.Fatalf("RegisterHandler returned error: %v", err)
	}

	_, err := d.Send(context.Background(), createWidget{Name: "a", Size: 1})
	if !errors.Is(err, storeDown) {
		t.Fatalf("expected infra error to propagate, got %v", err)
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Fatalf("infra error must not be folded into a validation result")
	}
}

func TestDispatcher_HandlerErrorPropagates(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	boom := errors.New("domain failure")
	if err := RegisterHandler(d, func(_ context.Context, req createWidget) (string, error) {
		return "", boom
	}); err != nil {
		t.Fatalf("RegisterHandler returned error: %v", err)
	}

	if _, err := d.Send(context.Background(), createWidget{Name: "a", Size: 1}); !errors.Is(err, boom) {
		t.Fatalf("expected handler error unchanged, got %v", err)
	}
}

func TestDispatcher_Cancellation(t *testing.T) {
	d := NewDispatcher(zerolog.Nop())

	if err := RegisterHandler(d, func(_ context.Context, req createWidget) (string, error) {
		t.Fatalf("handler must not run after cancellation")
		return "", nil
	}); err != nil {
		t.Fatalf("RegisterHandler returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.Send(ctx, createWidget{Name: "a", Size: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSchema_TagFailures(t *testing.T) {
	validate := Schema[createWidget](validator.New())

	fields, err := validate(context.Background(), createWidget{})
	if err != nil {
		t.Fatalf("Schema returned error: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("expected 2 failures, got %d: %+v", len(fields), fields)
	}
	for _, fe := range fields {
		if fe.Field != "name" && fe.Field != "size" {
			t.Fatalf("unexpected field %q", fe.Field)
		}
		if fe.Message == "" || strings.Contains(fe.Message, "Field") {
			t.Fatalf("expected a human-readable lowercase message, got %q", fe.Message)
		}
	}

	fields, err = validate(context.Background(), createWidget{Name: "a", Size: 1})
	if err != nil || len(fields) != 0 {
		t.Fatalf("expected clean result, got (%v, %v)", fields, err)
	}
}
