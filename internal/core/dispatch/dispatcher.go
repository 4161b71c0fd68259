// Package dispatch routes typed requests to their single registered handler.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-gin-gorm-shop/internal/domain"
)

// Request is a command or query. RequestName must be constant per type and
// callable on the zero value; it is the registry key.
type Request interface {
	RequestName() string
}

type HandlerFunc[R Request, T any] func(ctx context.Context, req R) (T, error)

type handlerFunc func(ctx context.Context, req Request) (any, error)

// Dispatcher is built once at start-up; it is read-only after registration
// and safe for concurrent Send calls.
type Dispatcher struct {
	handlers map[string]handlerFunc
	validate *validator.Validate
	log      *zap.Logger
}

func New(l *zap.Logger, v *validator.Validate) *Dispatcher {
	if l == nil {
		l = zap.NewNop()
	}
	if v == nil {
		v = NewValidator()
	}
	return &Dispatcher{
		handlers: make(map[string]handlerFunc),
		validate: v,
		log:      l,
	}
}

// Register binds h to R. Registering R twice is a wiring defect and panics.
func Register[R Request, T any](d *Dispatcher, h HandlerFunc[R, T]) {
	var zero R
	name := zero.RequestName()
	if _, dup := d.handlers[name]; dup {
		panic("dispatch: duplicate handler for " + name)
	}
	d.handlers[name] = func(ctx context.Context, req Request) (any, error) {
		r, ok := req.(R)
		if !ok {
			return nil, fmt.Errorf("dispatch: %s handler got %T", name, req)
		}
		return h(ctx, r)
	}
}

// Registered reports whether a handler exists for the named request.
func (d *Dispatcher) Registered(name string) bool {
	_, ok := d.handlers[name]
	return ok
}

// Send validates req, runs its handler and returns the result unchanged.
func (d *Dispatcher) Send(ctx context.Context, req Request) (any, error) {
	name := req.RequestName()
	start := time.Now()

	out, err := d.send(ctx, name, req)

	outcome := outcomeOf(err)
	observe(name, outcome, time.Since(start))
	fields := []zap.Field{
		zap.String("request", name),
		zap.String("outcome", outcome),
		zap.Duration("latency", time.Since(start)),
	}
	switch {
	case err == nil:
		d.log.Debug("dispatch", fields...)
	case outcome == outcomeError || outcome == string(domain.KindNoHandler):
		d.log.Error("dispatch", append(fields, zap.Error(err))...)
	default:
		d.log.Info("dispatch", append(fields, zap.String("reason", err.Error()))...)
	}
	return out, err
}

func (d *Dispatcher) send(ctx context.Context, name string, req Request) (any, error) {
	h, ok := d.handlers[name]
	if !ok {
		return nil, domain.NoHandlerRegistered(name)
	}
	if err := d.validateRequest(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h(ctx, req)
}

// Send is the typed form of Dispatcher.Send.
func Send[T any](ctx context.Context, d *Dispatcher, req Request) (T, error) {
	var zero T
	out, err := d.Send(ctx, req)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	v, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("dispatch: %s returned %T, want %T", req.RequestName(), out, zero)
	}
	return v, nil
}

// Unit is the result of commands that return nothing.
type Unit struct{}
