package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/veilhq/turnstile"
)

type echoConfig struct {
	credentials func(echo.Context) *turnstile.Credentials
}

// EchoOption configures the Echo adapter.
type EchoOption func(*echoConfig)

// WithEchoCredentialsResolver sets how the adapter extracts the
// caller's credentials from an Echo context. The default reads
// credentials stored in the request context via
// turnstile.WithCredentials.
func WithEchoCredentialsResolver(fn func(echo.Context) *turnstile.Credentials) EchoOption {
	return func(c *echoConfig) { c.credentials = fn }
}

// Echo mounts the router as Echo middleware. Matched requests are fully
// handled; unmatched requests continue down the Echo chain, so the
// router can front an existing Echo application without owning its
// route table.
func Echo(rt *turnstile.Router, opts ...EchoOption) echo.MiddlewareFunc {
	cfg := echoConfig{
		credentials: func(c echo.Context) *turnstile.Credentials {
			return turnstile.CredentialsFrom(c.Request().Context())
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			verb, ok := turnstile.ParseVerb(req.Method)
			if !ok {
				return next(c)
			}

			match, ok := rt.Dispatch(req.Context(), verb, req.URL.Path, cfg.credentials(c), c.RealIP())
			if !ok {
				return next(c)
			}

			switch d := match.Decision(); d.Outcome {
			case turnstile.OutcomeAllowed:
				resp, err := match.Action().Handler().Handle(req.Context(), match.NewRequest(req.Header, req.Body))
				if err != nil {
					return err
				}
				return c.Blob(resp.Status, resp.ContentType, resp.Body)
			case turnstile.OutcomeNotAuthenticated:
				fail := rt.ErrorFactory().NotAuthenticated()
				return c.Blob(fail.Status, fail.ContentType, fail.Body)
			default:
				fail := rt.ErrorFactory().NotAuthorized(d.ViolatedClaim)
				return c.Blob(fail.Status, fail.ContentType, fail.Body)
			}
		}
	}
}
