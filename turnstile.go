// Package turnstile is an embeddable request-routing and authorization
// layer for HTTP controllers.
//
// Actions are registered once at startup: a route template, a handler,
// and an access policy form one dispatchable unit, partitioned by HTTP
// verb. At request time the router finds the single action owning the
// path, extracts named route keys, and decides whether the caller may
// invoke it by combining the action's policy with an optional
// process-wide authorization scheme and the caller's presented claims.
//
//	rt := turnstile.New(
//	    turnstile.WithGlobalAuthorization(turnstile.GlobalAuthorization{
//	        Scheme:  turnstile.SchemeBearer,
//	        Enabled: true,
//	    }),
//	)
//	err := rt.Register(turnstile.GET, "/users/{id}", handler,
//	    turnstile.WithPolicy(turnstile.RequireClaims("admin")),
//	    turnstile.WithRouteKeys("id"),
//	)
//	match, ok := rt.Dispatch(ctx, turnstile.GET, "/users/42", creds, ip)
package turnstile

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// Verb is an HTTP method owning an independent action table.
type Verb string

// The four verbs the router partitions actions by. A route registered
// under one verb does not occupy the namespace of another.
const (
	GET    Verb = "GET"
	POST   Verb = "POST"
	PUT    Verb = "PUT"
	DELETE Verb = "DELETE"
)

// ParseVerb maps an HTTP method string onto a router verb. The second
// return value is false for methods the router does not dispatch.
func ParseVerb(method string) (Verb, bool) {
	switch method {
	case "GET":
		return GET, true
	case "POST":
		return POST, true
	case "PUT":
		return PUT, true
	case "DELETE":
		return DELETE, true
	default:
		return "", false
	}
}

// Claim is a single authenticated capability presented by a caller.
// Expiry is assumed already enforced upstream: the claim collection
// handed to the router contains only currently valid claims.
type Claim struct {
	ID string `json:"id"`

	// AllowedIPs restricts the claim to specific caller addresses.
	// Empty means the claim is valid from any address.
	AllowedIPs []string `json:"allowed_ips,omitempty"`
}

// IPAllowed reports whether the claim may be used from the given
// caller address.
func (c *Claim) IPAllowed(ip string) bool {
	if len(c.AllowedIPs) == 0 {
		return true
	}
	for _, allowed := range c.AllowedIPs {
		if allowed == ip {
			return true
		}
	}
	return false
}

// Credentials is the already-authenticated identity a transport hands
// to the router. A nil *Credentials means the caller presented no
// credentials at all; a non-nil value with no claims means the caller
// authenticated but carries no specific capabilities.
type Credentials struct {
	Subject string  `json:"subject,omitempty"`
	Claims  []Claim `json:"claims,omitempty"`
}

// Claim returns the presented claim with the given id.
func (c *Credentials) Claim(id string) (*Claim, bool) {
	for i := range c.Claims {
		if c.Claims[i].ID == id {
			return &c.Claims[i], true
		}
	}
	return nil, false
}

// Outcome is the tri-state result of an authorization decision.
type Outcome string

const (
	// OutcomeAllowed means the handler may be invoked.
	OutcomeAllowed Outcome = "allowed"

	// OutcomeNotAuthenticated means the action requires credentials and
	// the caller presented none. Maps to a 401-style response.
	OutcomeNotAuthenticated Outcome = "not_authenticated"

	// OutcomeNotAuthorized means the caller is authenticated but fails a
	// required claim. The violated claim id is carried on the Decision.
	OutcomeNotAuthorized Outcome = "not_authorized"
)

// Decision is the result of resolving an action's access policy against
// a caller. Produced fresh per request, never stored by the router.
type Decision struct {
	Outcome Outcome `json:"outcome"`

	// ViolatedClaim is the id of the first required claim the caller
	// failed to satisfy. Set only for OutcomeNotAuthorized.
	ViolatedClaim string `json:"violated_claim,omitempty"`

	Reason     string `json:"reason,omitempty"`
	EvalTimeNs int64  `json:"eval_time_ns"`
}

// Allowed reports whether the handler may be invoked.
func (d Decision) Allowed() bool { return d.Outcome == OutcomeAllowed }

// Request carries the transport-independent view of an incoming request
// into a handler.
type Request struct {
	Verb        Verb
	Path        string
	Header      http.Header
	Body        io.Reader
	Credentials *Credentials
	CallerIP    string

	match *Match
}

// RouteValue returns the value bound to a named route key of the matched
// route. It panics if the route does not declare the key: that can only
// happen when registration-time key validation was bypassed, which is a
// programming error rather than a request error.
func (r *Request) RouteValue(key string) string {
	return r.match.Value(key)
}

// Response is a transport-level reply produced by a handler or by the
// error factory. Adapters copy it onto their own response writer.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Text builds a plain-text response.
func Text(status int, body string) *Response {
	return &Response{Status: status, ContentType: "text/plain; charset=utf-8", Body: []byte(body)}
}

// JSON builds a JSON response from v.
func JSON(status int, v any) (*Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &Response{Status: status, ContentType: "application/json", Body: body}, nil
}

// Handler produces a response for a matched action.
type Handler interface {
	Handle(ctx context.Context, req *Request) (*Response, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}
