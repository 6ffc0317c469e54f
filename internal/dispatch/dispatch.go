// Package dispatch is the request pipeline every command and query passes
// through: resolve the handler for the request's type, run all registered
// validators, and invoke the handler only when validation collected no
// failures. Validators may perform I/O; an infrastructure error from a
// validator aborts the dispatch and propagates as-is rather than being
// folded into the validation result.
package dispatch

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskline/todo-api/internal/api/metrics"
)

type (
	handlerFunc   func(ctx context.Context, req any) (any, error)
	validatorFunc func(ctx context.Context, req any) ([]FieldError, error)
)

// Dispatcher routes request objects to their single handler, gated by the
// validators registered for the request's runtime type. Registration happens
// at startup; Send is safe for concurrent use afterwards.
type Dispatcher struct {
	handlers   map[reflect.Type]handlerFunc
	validators map[reflect.Type][]validatorFunc
	log        zerolog.Logger
}

func NewDispatcher(log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers:   make(map[reflect.Type]handlerFunc),
		validators: make(map[reflect.Type][]validatorFunc),
		log:        log,
	}
}

// RegisterHandler binds the one handler for request type Req. A second
// registration for the same type is a wiring bug and returns an error.
func RegisterHandler[Req any, Res any](d *Dispatcher, h func(ctx context.Context, req Req) (Res, error)) error {
	t := reflect.TypeOf((*Req)(nil)).Elem()
	if _, exists := d.handlers[t]; exists {
		return fmt.Errorf("dispatch: handler already registered for %s", t)
	}
	d.handlers[t] = func(ctx context.Context, req any) (any, error) {
		return h(ctx, req.(Req))
	}
	return nil
}

// RegisterValidator attaches a validator to request type Req. Order of
// registration is preserved, but validators must not depend on each other:
// all of them run on every dispatch.
func RegisterValidator[Req any](d *Dispatcher, v func(ctx context.Context, req Req) ([]FieldError, error)) {
	t := reflect.TypeOf((*Req)(nil)).Elem()
	d.validators[t] = append(d.validators[t], func(ctx context.Context, req any) ([]FieldError, error) {
		return v(ctx, req.(Req))
	})
}

// Send dispatches a request and asserts the handler's result to Res.
func Send[Res any](ctx context.Context, d *Dispatcher, req any) (Res, error) {
	var zero Res
	res, err := d.Send(ctx, req)
	if err != nil {
		return zero, err
	}
	out, ok := res.(Res)
	if !ok {
		return zero, fmt.Errorf("dispatch: handler for %T returned %T, want %T", req, res, zero)
	}
	return out, nil
}

// Send runs the pipeline for one request: every validator first (collecting
// all failures, not just the first), then the handler. A non-empty
// validation result short-circuits the dispatch and the handler never runs.
func (d *Dispatcher) Send(ctx context.Context, req any) (any, error) {
	t := reflect.TypeOf(req)
	handler, ok := d.handlers[t]
	if !ok {
		return nil, fmt.Errorf("dispatch: no handler registered for %s", t)
	}

	name := requestName(t)
	start := time.Now()

	var fields []FieldError
	for _, validate := range d.validators[t] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fe, err := validate(ctx, req)
		if err != nil {
			metrics.RequestsDispatchedTotal.WithLabelValues(name, "error").Inc()
			return nil, err
		}
		fields = append(fields, fe...)
	}

	if len(fields) > 0 {
		metrics.ValidationFailuresTotal.WithLabelValues(name).Inc()
		metrics.RequestsDispatchedTotal.WithLabelValues(name, "rejected").Inc()
		d.log.Debug().Str("request", name).Int("failures", len(fields)).Msg("request rejected by validation")
		return nil, &ValidationError{Fields: fields}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := handler(ctx, req)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.RequestsDispatchedTotal.WithLabelValues(name, outcome).Inc()
	metrics.DispatchDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	return res, err
}

// requestName yields a stable metric label for a request type.
func requestName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
