package turnstile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/veilhq/turnstile/auditlog"
	"github.com/veilhq/turnstile/id"
	"github.com/veilhq/turnstile/plugin"
)

// Router is the action registry and dispatcher. All mutation happens
// during the registration phase at startup; afterward the tables are
// read-only, so concurrent dispatch from many request goroutines needs
// no locking.
type Router struct {
	logger  *slog.Logger
	global  *GlobalAuthorization
	errors  ErrorFactory
	plugins *plugin.Registry
	audit   auditlog.Recorder
	tables  map[Verb]*actionTable
}

// actionTable holds one verb's actions. Zero-key routes live in the
// exact map keyed by lower-cased canonical path; keyed routes are
// scanned in registration order, first match wins.
type actionTable struct {
	exact     map[string]*Action
	keyed     []*Action
	all       []*Action
	templates map[string]struct{}
}

// New creates a router with the given options.
func New(opts ...Option) *Router {
	rt := &Router{
		logger: slog.Default(),
		errors: defaultErrorFactory{},
		tables: make(map[Verb]*actionTable, 4),
	}
	for _, verb := range []Verb{GET, POST, PUT, DELETE} {
		rt.tables[verb] = &actionTable{
			exact:     make(map[string]*Action),
			templates: make(map[string]struct{}),
		}
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Global returns the process-wide authorization configuration, or nil
// when none is configured.
func (rt *Router) Global() *GlobalAuthorization { return rt.global }

// ErrorFactory returns the installed error factory.
func (rt *Router) ErrorFactory() ErrorFactory { return rt.errors }

// Plugins returns the plugin registry (may be nil).
func (rt *Router) Plugins() *plugin.Registry { return rt.plugins }

// Actions returns the verb's actions in registration order, for
// documentation tooling.
func (rt *Router) Actions(verb Verb) []*Action {
	table, ok := rt.tables[verb]
	if !ok {
		return nil
	}
	return table.all
}

// Register parses the route template and adds an action to the verb's
// table. It fails on: an unknown verb, a nil handler, a route template
// equivalent to one already registered for the verb (equivalence
// ignores letter case, a trailing slash, and key names),
// a declared route key missing from the template, or a request body
// declared on GET or DELETE. Registration errors are startup
// configuration errors; use MustRegister to make them fatal.
func (rt *Router) Register(verb Verb, routeTemplate string, h Handler, opts ...ActionOption) error {
	table, ok := rt.tables[verb]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidVerb, verb)
	}
	if h == nil {
		return fmt.Errorf("%w: route %q", ErrNilHandler, routeTemplate)
	}

	var cfg actionConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.desc.HasRequestBody && (verb == GET || verb == DELETE) {
		return fmt.Errorf("%w: %s %q", ErrBodyNotAllowed, verb, routeTemplate)
	}

	route := ParseRoute(routeTemplate)
	for _, key := range cfg.declaredKeys {
		if !route.HasKey(key) {
			return fmt.Errorf("%w %q: route %q", ErrMissingRouteKey, key, routeTemplate)
		}
	}

	canonical := route.canonicalKey()
	if _, dup := table.templates[canonical]; dup {
		return fmt.Errorf("%w: %s %q", ErrDuplicateRoute, verb, routeTemplate)
	}
	table.templates[canonical] = struct{}{}

	action := &Action{
		id:      id.NewActionID(),
		verb:    verb,
		route:   route,
		handler: h,
		policy:  cfg.policy,
		desc:    cfg.desc,
	}

	if route.KeyCount() == 0 {
		table.exact[canonical] = action
	} else {
		table.keyed = append(table.keyed, action)
	}
	table.all = append(table.all, action)

	rt.logger.Debug("action registered",
		slog.String("verb", string(verb)),
		slog.String("route", routeTemplate),
		slog.String("policy", string(action.policy.Kind())),
	)
	if rt.plugins != nil {
		rt.plugins.EmitActionRegistered(context.Background(), action)
	}
	return nil
}

// MustRegister is like Register but panics on error, matching the
// fail-fast startup semantics of misconfigured routes.
func (rt *Router) MustRegister(verb Verb, routeTemplate string, h Handler, opts ...ActionOption) {
	if err := rt.Register(verb, routeTemplate, h, opts...); err != nil {
		panic(err)
	}
}

// Dispatch finds the action owning the path for the verb and resolves
// its access policy against the caller. It returns false when no route
// matches, signaling the enclosing pipeline to try its next handler or
// return 404.
//
// Zero-key routes are looked up in the exact map; keyed routes are
// scanned in registration order and the first structural match wins —
// overlapping keyed routes are resolved by registration order, not by
// specificity.
func (rt *Router) Dispatch(ctx context.Context, verb Verb, path string, creds *Credentials, callerIP string) (*Match, bool) {
	start := time.Now()

	table, ok := rt.tables[verb]
	if !ok {
		return nil, false
	}

	segments := splitPath(path)
	action, ok := table.exact[pathKey(segments)]
	if !ok {
		for _, a := range table.keyed {
			if a.route.matchSegments(segments) {
				action = a
				ok = true
				break
			}
		}
	}
	if !ok {
		return nil, false
	}

	if rt.plugins != nil {
		rt.plugins.EmitBeforeDispatch(ctx, action)
	}

	decision := Resolve(action.policy, rt.global, creds, callerIP)
	decision.EvalTimeNs = time.Since(start).Nanoseconds()

	match := &Match{
		action:   action,
		decision: decision,
		verb:     verb,
		path:     path,
		segments: segments,
		creds:    creds,
		callerIP: callerIP,
	}

	if rt.audit != nil {
		rt.audit.Record(ctx, &auditlog.Entry{
			ID:            id.NewDispatchLogID(),
			ActionID:      action.id,
			Verb:          string(verb),
			Path:          path,
			Route:         action.route.Template(),
			Outcome:       string(decision.Outcome),
			ViolatedClaim: decision.ViolatedClaim,
			CallerIP:      callerIP,
			EvalTimeNs:    decision.EvalTimeNs,
			ObservedAt:    time.Now(),
		})
	}
	if rt.plugins != nil {
		rt.plugins.EmitAfterDispatch(ctx, match)
	}
	return match, true
}

// Close emits plugin shutdown hooks.
func (rt *Router) Close(ctx context.Context) error {
	if rt.plugins != nil {
		rt.plugins.EmitShutdown(ctx)
	}
	return nil
}

// Match is the ephemeral result of a successful dispatch: the owning
// action, the authorization decision, and the request path for key
// extraction.
type Match struct {
	action   *Action
	decision Decision
	verb     Verb
	path     string
	segments []string
	creds    *Credentials
	callerIP string
}

// Action returns the matched action.
func (m *Match) Action() *Action { return m.action }

// Decision returns the authorization decision for this request.
func (m *Match) Decision() Decision { return m.decision }

// Value returns the path component bound to the named route key. It
// panics if the matched route does not declare the key.
func (m *Match) Value(key string) string {
	return m.action.route.valueAt(m.segments, key)
}

// NewRequest builds the handler-facing request for this match.
// Transport adapters call it after an allowed decision.
func (m *Match) NewRequest(header http.Header, body io.Reader) *Request {
	return &Request{
		Verb:        m.verb,
		Path:        m.path,
		Header:      header,
		Body:        body,
		Credentials: m.creds,
		CallerIP:    m.callerIP,
		match:       m,
	}
}
