package turnstile

import (
	"fmt"
	"net/http"
)

// ErrorFactory renders authorization failures into transport-level
// responses. Installing a custom factory lets an application control
// how much detail callers see — in particular whether the violated
// claim id of a not-authorized outcome is exposed.
type ErrorFactory interface {
	// NotAuthenticated renders the response for a caller that presented
	// no credentials to an action requiring them.
	NotAuthenticated() *Response

	// NotAuthorized renders the response for an authenticated caller
	// failing the given required claim.
	NotAuthorized(claimID string) *Response
}

// defaultErrorFactory exposes the violated claim id to aid debugging.
type defaultErrorFactory struct{}

func (defaultErrorFactory) NotAuthenticated() *Response {
	return Text(http.StatusUnauthorized, "authentication required")
}

func (defaultErrorFactory) NotAuthorized(claimID string) *Response {
	return Text(http.StatusForbidden, fmt.Sprintf("claim %q required", claimID))
}
