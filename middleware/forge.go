package middleware

import (
	"strings"

	"github.com/xraph/forge"

	"github.com/veilhq/turnstile"
)

// Require enforces a registered action's authorization policy on a
// Forge route. The route template must match the one registered with
// the router; key segments are materialized from Forge path parameters
// before dispatch. Allowed requests continue to the Forge handler —
// the turnstile action's own handler is not invoked in this mode.
func Require(rt *turnstile.Router, verb turnstile.Verb, route string) forge.Middleware {
	keys := turnstile.ParseRoute(route).Keys()

	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			path := route
			for _, key := range keys {
				path = strings.ReplaceAll(path, "{"+key+"}", ctx.Param(key))
			}

			match, ok := rt.Dispatch(ctx.Context(), verb, path, resolveCredentials(ctx), turnstile.CallerIPFrom(ctx.Context()))
			if !ok {
				return next(ctx)
			}

			switch d := match.Decision(); d.Outcome {
			case turnstile.OutcomeAllowed:
				return next(ctx)
			case turnstile.OutcomeNotAuthenticated:
				return denyResponse(ctx, rt.ErrorFactory().NotAuthenticated())
			default:
				return denyResponse(ctx, rt.ErrorFactory().NotAuthorized(d.ViolatedClaim))
			}
		}
	}
}

// resolveCredentials extracts credentials from context.
// Priority: turnstile credentials → Forge user ID → anonymous.
func resolveCredentials(ctx forge.Context) *turnstile.Credentials {
	if creds := turnstile.CredentialsFrom(ctx.Context()); creds != nil {
		return creds
	}
	if userID := forge.UserIDFromContext(ctx.Context()); userID != "" {
		return &turnstile.Credentials{Subject: userID}
	}
	return nil
}

func denyResponse(ctx forge.Context, fail *turnstile.Response) error {
	ctx.SetHeader("Content-Type", fail.ContentType)
	ctx.Response().WriteHeader(fail.Status)
	_, err := ctx.Response().Write(fail.Body)
	return err
}
