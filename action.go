package turnstile

import "github.com/veilhq/turnstile/id"

// Description is the documentation metadata attached to an action at
// registration time. It is consumed by the OpenAPI generator and never
// influences dispatch, with one exception: HasRequestBody participates
// in the registration-time body check for GET and DELETE.
type Description struct {
	Summary     string
	Description string
	OperationID string
	Tags        []string
	Deprecated  bool

	// HasRequestBody marks the action as expecting a request body.
	// Declaring it on GET or DELETE fails registration.
	HasRequestBody bool

	// Responses documents the statuses the handler may produce.
	Responses []ResponseDescription
}

// ResponseDescription documents one response an action may produce.
type ResponseDescription struct {
	Status      int
	Description string
}

// Action ties a route, a handler, and an access policy into one
// dispatchable unit. Actions are created exactly once per (verb, route)
// pair during startup and are immutable afterward.
type Action struct {
	id      id.ActionID
	verb    Verb
	route   *Route
	handler Handler
	policy  AccessPolicy
	desc    Description
}

// ID returns the action's unique identifier.
func (a *Action) ID() id.ActionID { return a.id }

// Verb returns the HTTP verb the action is registered under.
func (a *Action) Verb() Verb { return a.verb }

// Route returns the action's parsed route.
func (a *Action) Route() *Route { return a.route }

// Handler returns the action's handler.
func (a *Action) Handler() Handler { return a.handler }

// Policy returns the action's access policy.
func (a *Action) Policy() AccessPolicy { return a.policy }

// Description returns the action's documentation metadata.
func (a *Action) Description() Description { return a.desc }

type actionConfig struct {
	policy       AccessPolicy
	declaredKeys []string
	desc         Description
}

// ActionOption configures an action at registration time.
type ActionOption func(*actionConfig)

// WithPolicy sets the action's access policy. Actions registered
// without it inherit the global configuration.
func WithPolicy(p AccessPolicy) ActionOption {
	return func(c *actionConfig) { c.policy = p }
}

// WithRouteKeys declares the route keys the handler reads. Registration
// fails if the route template does not contain every declared key,
// turning a would-be request-time programming error into a startup
// error.
func WithRouteKeys(keys ...string) ActionOption {
	return func(c *actionConfig) { c.declaredKeys = append(c.declaredKeys, keys...) }
}

// WithSummary sets the one-line summary shown in documentation.
func WithSummary(s string) ActionOption {
	return func(c *actionConfig) { c.desc.Summary = s }
}

// WithDescription sets the long-form documentation text.
func WithDescription(s string) ActionOption {
	return func(c *actionConfig) { c.desc.Description = s }
}

// WithOperationID sets the OpenAPI operation id.
func WithOperationID(s string) ActionOption {
	return func(c *actionConfig) { c.desc.OperationID = s }
}

// WithTags sets the documentation tags.
func WithTags(tags ...string) ActionOption {
	return func(c *actionConfig) { c.desc.Tags = append(c.desc.Tags, tags...) }
}

// WithDeprecated marks the action as deprecated in documentation.
func WithDeprecated() ActionOption {
	return func(c *actionConfig) { c.desc.Deprecated = true }
}

// WithRequestBody marks the action as expecting a request body.
func WithRequestBody() ActionOption {
	return func(c *actionConfig) { c.desc.HasRequestBody = true }
}

// WithResponse documents a response status the handler may produce.
func WithResponse(status int, description string) ActionOption {
	return func(c *actionConfig) {
		c.desc.Responses = append(c.desc.Responses, ResponseDescription{Status: status, Description: description})
	}
}
