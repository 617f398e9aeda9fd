package turnstile

import (
	"context"
	"testing"
)

func TestCredentialsContextRoundTrip(t *testing.T) {
	creds := &Credentials{Subject: "u1", Claims: []Claim{{ID: "admin"}}}
	ctx := WithCredentials(context.Background(), creds)

	got := CredentialsFrom(ctx)
	if got == nil || got.Subject != "u1" {
		t.Fatalf("CredentialsFrom = %+v, want %+v", got, creds)
	}
	if CredentialsFrom(context.Background()) != nil {
		t.Error("expected nil credentials from empty context")
	}
}

func TestCallerIPContextRoundTrip(t *testing.T) {
	ctx := WithCallerIP(context.Background(), "10.0.0.1")

	if got := CallerIPFrom(ctx); got != "10.0.0.1" {
		t.Errorf("CallerIPFrom = %q, want %q", got, "10.0.0.1")
	}
	if got := CallerIPFrom(context.Background()); got != "" {
		t.Errorf("expected empty address from empty context, got %q", got)
	}
}
