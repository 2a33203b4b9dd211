// Package tracing opens child spans for code that runs inside an already
// traced request or job.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var detached = trace.SpanFromContext(context.Background())

// Scope starts spans under one instrumentation name.
type Scope struct {
	name     string
	provider trace.TracerProvider
	prefix   string
}

type Option func(*Scope)

// WithProvider pins the tracer provider. The global provider is used otherwise.
func WithProvider(tp trace.TracerProvider) Option {
	return func(s *Scope) { s.provider = tp }
}

// OnlyPrefix drops span names that do not start with prefix.
func OnlyPrefix(prefix string) Option {
	return func(s *Scope) { s.prefix = prefix }
}

func NewScope(name string, opts ...Option) Scope {
	s := Scope{name: name}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Start returns a child of the span in ctx. Without a valid parent, or for a
// filtered name, ctx comes back unchanged with a non-recording span.
func (s Scope) Start(ctx context.Context, name string) (context.Context, trace.Span) {
	name = strings.TrimSpace(name)
	if name == "" || !strings.HasPrefix(name, s.prefix) {
		return ctx, detached
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, detached
	}
	return s.tracer().Start(ctx, name)
}

func (s Scope) tracer() trace.Tracer {
	if s.provider != nil {
		return s.provider.Tracer(s.name)
	}
	return otel.Tracer(s.name)
}
