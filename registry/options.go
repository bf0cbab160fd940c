package registry

import "github.com/prometheus/client_golang/prometheus"

// Option configures an Engine.
type Option func(*Engine)

// WithRedefinition allows tags of the global registry to be redefined.
func WithRedefinition() Option {
	return func(e *Engine) {
		e.global.allowRedefinition = true
	}
}

// WithMetrics registers the engine's metrics with reg. An engine's metrics
// may be registered with a Registerer only once.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.registerer = reg
	}
}

// WithErrorHandler sets the function errors without a caller are reported
// to, e.g. failed upgrades of pending elements. The default traces them.
func WithErrorHandler(h func(error)) Option {
	return func(e *Engine) {
		e.onError = h
	}
}

// RegistryOption configures a Registry created by Engine.NewRegistry.
type RegistryOption func(*Registry)

// AllowRedefinition lets a definition of a tag replace an existing one.
// Elements upgraded before keep the definition they have been upgraded with.
func AllowRedefinition() RegistryOption {
	return func(r *Registry) {
		r.allowRedefinition = true
	}
}

// Named gives a registry a name, used for tracing and debugging.
func Named(name string) RegistryOption {
	return func(r *Registry) {
		r.name = name
	}
}
