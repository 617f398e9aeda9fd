package turnstile

import (
	"log/slog"

	"github.com/veilhq/turnstile/auditlog"
	"github.com/veilhq/turnstile/plugin"
)

// Option is a functional option for the Router.
type Option func(*Router)

// WithGlobalAuthorization sets the process-wide authorization
// configuration that InheritGlobal actions defer to.
func WithGlobalAuthorization(g GlobalAuthorization) Option {
	return func(rt *Router) { rt.global = &g }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(rt *Router) { rt.logger = l } }

// WithErrorFactory sets the factory rendering authorization failures
// into transport responses.
func WithErrorFactory(f ErrorFactory) Option { return func(rt *Router) { rt.errors = f } }

// WithAuditRecorder sets the recorder receiving one entry per
// dispatched request.
func WithAuditRecorder(r auditlog.Recorder) Option { return func(rt *Router) { rt.audit = r } }

// WithPlugin registers a plugin with the router.
func WithPlugin(p plugin.Plugin) Option {
	return func(rt *Router) {
		if rt.plugins == nil {
			rt.plugins = plugin.NewRegistry(rt.logger)
		}
		rt.plugins.Register(p)
	}
}
