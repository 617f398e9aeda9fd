// Package plugin defines lifecycle hooks for the turnstile router.
// Plugins are notified of registration and dispatch events and can
// react — logging, metrics, tracing, etc.
//
// Each lifecycle hook is a separate interface so plugins opt in only
// to the events they care about.
package plugin

import "context"

// Plugin is the base interface all plugins must implement.
type Plugin interface {
	// Name returns a unique human-readable name for the plugin.
	Name() string
}

// ActionRegistered is called after an action is registered with the
// router. The action parameter is *turnstile.Action (passed as any to
// avoid an import cycle).
type ActionRegistered interface {
	OnActionRegistered(ctx context.Context, action any) error
}

// BeforeDispatch is called after a route matched, before the
// authorization decision is made. The action parameter is
// *turnstile.Action.
type BeforeDispatch interface {
	OnBeforeDispatch(ctx context.Context, action any) error
}

// AfterDispatch is called after the authorization decision is made.
// The match parameter is *turnstile.Match.
type AfterDispatch interface {
	OnAfterDispatch(ctx context.Context, match any) error
}

// Shutdown is called during graceful shutdown.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
