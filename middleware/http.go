// Package middleware provides transport adapters mounting a turnstile
// router into net/http, Echo, and Forge handler chains.
package middleware

import (
	"net"
	"net/http"

	"github.com/veilhq/turnstile"
)

type httpConfig struct {
	credentials func(*http.Request) *turnstile.Credentials
	callerIP    func(*http.Request) string
}

// HTTPOption configures the net/http adapter.
type HTTPOption func(*httpConfig)

// WithCredentialsResolver sets how the adapter extracts the caller's
// authenticated credentials from a request. The default reads
// credentials stored in the request context via
// turnstile.WithCredentials.
func WithCredentialsResolver(fn func(*http.Request) *turnstile.Credentials) HTTPOption {
	return func(c *httpConfig) { c.credentials = fn }
}

// WithCallerIPResolver sets how the adapter determines the caller's
// address. The default prefers turnstile.CallerIPFrom on the request
// context and falls back to the connection's remote host.
func WithCallerIPResolver(fn func(*http.Request) string) HTTPOption {
	return func(c *httpConfig) { c.callerIP = fn }
}

// HTTP mounts the router as an http.Handler. Requests whose verb and
// path match a registered action are fully handled: the action's
// handler runs on an allowed decision and the router's error factory
// renders authentication and authorization failures. Everything else
// falls through to next; a nil next produces 404.
func HTTP(rt *turnstile.Router, next http.Handler, opts ...HTTPOption) http.Handler {
	cfg := httpConfig{
		credentials: func(r *http.Request) *turnstile.Credentials {
			return turnstile.CredentialsFrom(r.Context())
		},
		callerIP: remoteIP,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if next == nil {
		next = http.NotFoundHandler()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		verb, ok := turnstile.ParseVerb(r.Method)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		match, ok := rt.Dispatch(r.Context(), verb, r.URL.Path, cfg.credentials(r), cfg.callerIP(r))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		switch d := match.Decision(); d.Outcome {
		case turnstile.OutcomeAllowed:
			resp, err := match.Action().Handler().Handle(r.Context(), match.NewRequest(r.Header, r.Body))
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			writeResponse(w, resp)
		case turnstile.OutcomeNotAuthenticated:
			writeResponse(w, rt.ErrorFactory().NotAuthenticated())
		default:
			writeResponse(w, rt.ErrorFactory().NotAuthorized(d.ViolatedClaim))
		}
	})
}

func writeResponse(w http.ResponseWriter, resp *turnstile.Response) {
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

func remoteIP(r *http.Request) string {
	if ip := turnstile.CallerIPFrom(r.Context()); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
