package turnstile

import "context"

type contextKey int

const (
	ctxKeyCredentials contextKey = iota
	ctxKeyCallerIP
)

// WithCredentials returns a context carrying the caller's authenticated
// credentials. Transport adapters that authenticate upstream of the
// router use this to hand the result through.
func WithCredentials(ctx context.Context, creds *Credentials) context.Context {
	return context.WithValue(ctx, ctxKeyCredentials, creds)
}

// CredentialsFrom extracts credentials previously stored with
// WithCredentials. Returns nil for an unauthenticated caller.
func CredentialsFrom(ctx context.Context) *Credentials {
	creds, ok := ctx.Value(ctxKeyCredentials).(*Credentials)
	if !ok {
		return nil
	}
	return creds
}

// WithCallerIP returns a context carrying the caller's network address.
func WithCallerIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyCallerIP, ip)
}

// CallerIPFrom extracts the caller address stored with WithCallerIP.
func CallerIPFrom(ctx context.Context) string {
	ip, ok := ctx.Value(ctxKeyCallerIP).(string)
	if !ok {
		return ""
	}
	return ip
}
