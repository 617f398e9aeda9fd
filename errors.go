package turnstile

import "errors"

var (
	// ErrDuplicateRoute is returned when a route template
	// case-insensitively identical to an already-registered one is
	// registered for the same verb.
	ErrDuplicateRoute = errors.New("turnstile: route already registered")

	// ErrMissingRouteKey is returned when a declared route key is not
	// present in the route template.
	ErrMissingRouteKey = errors.New("turnstile: route does not have key")

	// ErrBodyNotAllowed is returned when an action registered for GET or
	// DELETE declares a request body.
	ErrBodyNotAllowed = errors.New("turnstile: request body not allowed for verb")

	// ErrInvalidVerb is returned when registering under a verb the
	// router does not dispatch.
	ErrInvalidVerb = errors.New("turnstile: invalid verb")

	// ErrNilHandler is returned when an action is registered without a
	// handler.
	ErrNilHandler = errors.New("turnstile: handler is required")
)
