package plugin

import (
	"context"
	"log/slog"
)

// Named entry types pair a hook with the plugin name for logging.

type actionRegisteredEntry struct {
	name string
	hook ActionRegistered
}
type beforeDispatchEntry struct {
	name string
	hook BeforeDispatch
}
type afterDispatchEntry struct {
	name string
	hook AfterDispatch
}
type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered plugins and dispatches lifecycle events.
// It type-caches plugins at registration time so emit calls iterate
// only over plugins implementing the relevant hook.
type Registry struct {
	plugins []Plugin
	logger  *slog.Logger

	actionRegistered []actionRegisteredEntry
	beforeDispatch   []beforeDispatchEntry
	afterDispatch    []afterDispatchEntry
	shutdown         []shutdownEntry
}

// NewRegistry creates a plugin registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a plugin and type-asserts it into all applicable
// hook caches. Plugins are notified in registration order.
func (r *Registry) Register(p Plugin) {
	r.plugins = append(r.plugins, p)
	name := p.Name()

	if h, ok := p.(ActionRegistered); ok {
		r.actionRegistered = append(r.actionRegistered, actionRegisteredEntry{name, h})
	}
	if h, ok := p.(BeforeDispatch); ok {
		r.beforeDispatch = append(r.beforeDispatch, beforeDispatchEntry{name, h})
	}
	if h, ok := p.(AfterDispatch); ok {
		r.afterDispatch = append(r.afterDispatch, afterDispatchEntry{name, h})
	}
	if h, ok := p.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Plugins returns all registered plugins.
func (r *Registry) Plugins() []Plugin { return r.plugins }

// EmitActionRegistered notifies all plugins that implement ActionRegistered.
func (r *Registry) EmitActionRegistered(ctx context.Context, action any) {
	for _, e := range r.actionRegistered {
		if err := e.hook.OnActionRegistered(ctx, action); err != nil {
			r.logHookError("OnActionRegistered", e.name, err)
		}
	}
}

// EmitBeforeDispatch notifies all plugins that implement BeforeDispatch.
func (r *Registry) EmitBeforeDispatch(ctx context.Context, action any) {
	for _, e := range r.beforeDispatch {
		if err := e.hook.OnBeforeDispatch(ctx, action); err != nil {
			r.logHookError("OnBeforeDispatch", e.name, err)
		}
	}
}

// EmitAfterDispatch notifies all plugins that implement AfterDispatch.
func (r *Registry) EmitAfterDispatch(ctx context.Context, match any) {
	for _, e := range r.afterDispatch {
		if err := e.hook.OnAfterDispatch(ctx, match); err != nil {
			r.logHookError("OnAfterDispatch", e.name, err)
		}
	}
}

// EmitShutdown notifies all plugins that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a lifecycle hook returns an error.
// Errors from hooks are never propagated — they must not block dispatch.
func (r *Registry) logHookError(hook, pluginName string, err error) {
	r.logger.Warn("plugin hook error",
		slog.String("hook", hook),
		slog.String("plugin", pluginName),
		slog.String("error", err.Error()),
	)
}
