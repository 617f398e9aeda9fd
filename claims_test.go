package turnstile

import "testing"

func TestRequiredClaims_EmptySetAlwaysSatisfied(t *testing.T) {
	rc := NewRequiredClaims()

	if violated := rc.Evaluate("10.0.0.1", nil); violated != "" {
		t.Errorf("expected satisfied with no credentials, got violation %q", violated)
	}
	creds := &Credentials{Claims: []Claim{{ID: "whatever"}}}
	if violated := rc.Evaluate("10.0.0.1", creds); violated != "" {
		t.Errorf("expected satisfied with credentials, got violation %q", violated)
	}
}

func TestRequiredClaims_MissingCredentialsViolatesFirst(t *testing.T) {
	rc := NewRequiredClaims("admin", "read")

	if violated := rc.Evaluate("10.0.0.1", nil); violated != "admin" {
		t.Errorf("expected first required id violated, got %q", violated)
	}
}

func TestRequiredClaims_FailFastOnFirstMissing(t *testing.T) {
	rc := NewRequiredClaims("read", "write", "admin")
	creds := &Credentials{Claims: []Claim{{ID: "read"}, {ID: "admin"}}}

	if violated := rc.Evaluate("10.0.0.1", creds); violated != "write" {
		t.Errorf("expected %q violated, got %q", "write", violated)
	}
}

func TestRequiredClaims_AllPresent(t *testing.T) {
	rc := NewRequiredClaims("read", "write")
	creds := &Credentials{Claims: []Claim{{ID: "write"}, {ID: "read"}}}

	if violated := rc.Evaluate("10.0.0.1", creds); violated != "" {
		t.Errorf("expected satisfied, got violation %q", violated)
	}
}

func TestRequiredClaims_IPAllowList(t *testing.T) {
	rc := NewRequiredClaims("admin")
	creds := &Credentials{Claims: []Claim{
		{ID: "admin", AllowedIPs: []string{"10.0.0.1", "10.0.0.2"}},
	}}

	if violated := rc.Evaluate("10.0.0.2", creds); violated != "" {
		t.Errorf("expected satisfied from allowed address, got violation %q", violated)
	}
	if violated := rc.Evaluate("192.168.1.1", creds); violated != "admin" {
		t.Errorf("expected violation from disallowed address, got %q", violated)
	}
}

func TestClaim_EmptyAllowListPermitsAnyIP(t *testing.T) {
	c := Claim{ID: "read"}

	if !c.IPAllowed("203.0.113.7") {
		t.Error("expected claim with no allow-list to accept any address")
	}
}
