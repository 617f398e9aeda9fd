package turnstile

// RequiredClaims is the set of claim ids a caller must present to pass a
// claims-based policy. Order matters only for which violation is
// reported; duplicates are harmless.
type RequiredClaims struct {
	ids []string
}

// NewRequiredClaims builds a required-claims set.
func NewRequiredClaims(ids ...string) RequiredClaims {
	return RequiredClaims{ids: ids}
}

// IsEmpty reports whether no claims are required. An empty set degrades
// the policy to "authenticated is enough".
func (rc RequiredClaims) IsEmpty() bool { return len(rc.ids) == 0 }

// IDs returns the required claim ids in declaration order.
func (rc RequiredClaims) IDs() []string { return rc.ids }

// Evaluate checks the caller's presented claims against the required
// set and returns the id of the first claim the caller fails to
// satisfy, or "" when the set is satisfied.
//
// Evaluation is required-driven and fail-fast, left to right: a required
// id missing from the presented claims, or presented with an IP
// allow-list that excludes callerIP, violates immediately. An absent
// credential set violates the first required id, since no specific
// presented claim can be blamed.
func (rc RequiredClaims) Evaluate(callerIP string, creds *Credentials) string {
	if len(rc.ids) == 0 {
		return ""
	}
	if creds == nil {
		return rc.ids[0]
	}
	for _, id := range rc.ids {
		claim, ok := creds.Claim(id)
		if !ok {
			return id
		}
		if !claim.IPAllowed(callerIP) {
			return id
		}
	}
	return ""
}
