package turnstile

// Resolve applies the access-policy precedence table.
//
// Explicit per-action policies always win over the global
// configuration, in either direction: AllowAnonymous admits everyone
// regardless of global state, RequireAuthentication and RequireClaims
// enforce regardless of global state. Only InheritGlobal consults the
// global configuration, and only when it is present and enabled does it
// enforce anything — endpoints predating a newly introduced global
// scheme keep working until explicitly opted in.
//
// The global configuration is an explicit argument rather than ambient
// state so the procedure stays pure and testable.
func Resolve(policy AccessPolicy, global *GlobalAuthorization, creds *Credentials, callerIP string) Decision {
	switch policy.Kind() {
	case PolicyAllowAnonymous:
		return Decision{Outcome: OutcomeAllowed}

	case PolicyRequireAuthentication:
		if creds == nil {
			return Decision{Outcome: OutcomeNotAuthenticated, Reason: "caller presented no credentials"}
		}
		return Decision{Outcome: OutcomeAllowed}

	case PolicyRequireClaims:
		if creds == nil {
			return Decision{Outcome: OutcomeNotAuthenticated, Reason: "caller presented no credentials"}
		}
		return evaluateClaims(policy.RequiredClaims(), creds, callerIP)

	default: // PolicyInheritGlobal
		if global == nil || !global.Enabled {
			return Decision{Outcome: OutcomeAllowed}
		}
		if creds == nil {
			return Decision{Outcome: OutcomeNotAuthenticated, Reason: "caller presented no credentials"}
		}
		return evaluateClaims(global.RequiredClaims, creds, callerIP)
	}
}

func evaluateClaims(required RequiredClaims, creds *Credentials, callerIP string) Decision {
	if violated := required.Evaluate(callerIP, creds); violated != "" {
		return Decision{
			Outcome:       OutcomeNotAuthorized,
			ViolatedClaim: violated,
			Reason:        "required claim not satisfied",
		}
	}
	return Decision{Outcome: OutcomeAllowed}
}
