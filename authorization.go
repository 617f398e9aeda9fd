package turnstile

// PolicyKind identifies the variant of an action's access policy.
type PolicyKind string

const (
	// PolicyInheritGlobal defers the decision to the process-wide
	// authorization configuration. This is the default for actions
	// registered without an explicit policy.
	PolicyInheritGlobal PolicyKind = "inherit_global"

	// PolicyAllowAnonymous bypasses authentication entirely. It is an
	// unconditional opt-out and wins over any global configuration, so
	// public endpoints are never locked down by a global policy change.
	PolicyAllowAnonymous PolicyKind = "allow_anonymous"

	// PolicyRequireAuthentication requires credentials but no specific
	// claims.
	PolicyRequireAuthentication PolicyKind = "require_authentication"

	// PolicyRequireClaims requires credentials carrying every claim in
	// the policy's required set.
	PolicyRequireClaims PolicyKind = "require_claims"
)

// AccessPolicy is an action's authorization requirement, attached at
// registration time and immutable afterward. The zero value is
// InheritGlobal.
type AccessPolicy struct {
	kind   PolicyKind
	claims RequiredClaims
}

// InheritGlobal returns the policy that defers to the process-wide
// authorization configuration.
func InheritGlobal() AccessPolicy {
	return AccessPolicy{kind: PolicyInheritGlobal}
}

// AllowAnonymous returns the policy that admits every caller.
func AllowAnonymous() AccessPolicy {
	return AccessPolicy{kind: PolicyAllowAnonymous}
}

// RequireAuthentication returns the policy that requires credentials
// without specific claims.
func RequireAuthentication() AccessPolicy {
	return AccessPolicy{kind: PolicyRequireAuthentication}
}

// RequireClaims returns the policy that requires credentials carrying
// every given claim id.
func RequireClaims(ids ...string) AccessPolicy {
	return AccessPolicy{kind: PolicyRequireClaims, claims: NewRequiredClaims(ids...)}
}

// Kind returns the policy variant. The zero value reports
// PolicyInheritGlobal.
func (p AccessPolicy) Kind() PolicyKind {
	if p.kind == "" {
		return PolicyInheritGlobal
	}
	return p.kind
}

// RequiredClaims returns the claim set for PolicyRequireClaims policies;
// it is empty for every other kind.
func (p AccessPolicy) RequiredClaims() RequiredClaims { return p.claims }

// Scheme is the authentication scheme of the process-wide authorization
// configuration. It only affects how documentation renders the security
// requirement; the decision procedure treats all schemes alike.
type Scheme string

const (
	SchemeBasic  Scheme = "basic"
	SchemeAPIKey Scheme = "api_key"
	SchemeBearer Scheme = "bearer"
)

// SecurityName returns the OpenAPI security-scheme name used in
// generated documentation.
func (s Scheme) SecurityName() string {
	switch s {
	case SchemeBasic:
		return "BasicAuth"
	case SchemeAPIKey:
		return "ApiKeyAuth"
	default:
		return "BearerAuth"
	}
}

// GlobalAuthorization is the optional process-wide authorization
// configuration that InheritGlobal actions defer to. It is set once at
// startup and read-only for the life of the process.
//
// Enabled=false means the scheme exists for documentation purposes but
// enforces nothing: deferring actions are allowed without
// authentication.
type GlobalAuthorization struct {
	Scheme         Scheme
	Enabled        bool
	RequiredClaims RequiredClaims
}
